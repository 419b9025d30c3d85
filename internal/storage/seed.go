package storage

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rah-0/launchpad/internal/models"
	"gopkg.in/yaml.v3"
)

// Document is the shared record set launch control runs against: users and their
// sessions, missions, astronauts and launch vehicles.
type Document struct {
	Users      []models.User          `yaml:"users"`
	Sessions   []models.Session       `yaml:"sessions"`
	Missions   []models.Mission       `yaml:"missions"`
	Astronauts []models.Astronaut     `yaml:"astronauts"`
	Vehicles   []models.LaunchVehicle `yaml:"vehicles"`
}

// LoadDocument reads a YAML seed document from disk
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes a YAML seed document, rejecting unknown keys
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding seed document: %w", err)
	}
	return &doc, nil
}
