package storage

import (
	"sort"
	"strings"

	"github.com/rah-0/launchpad/internal/models"
)

// ValidSortFields defines the allowed fields for sorting launches
var ValidSortFields = map[string]bool{
	"id":        true,
	"state":     true,
	"vehicle":   true,
	"createdat": true,
}

// ValidOrders defines the allowed sort orders
var ValidOrders = map[string]bool{
	"asc":  true,
	"desc": true,
}

type SortOptions struct {
	Field string
	Order string
}

func NewSortOptions() SortOptions {
	return SortOptions{
		Field: "id",
		Order: "asc",
	}
}

// SortLaunches orders launches in place; ties keep their relative order
func SortLaunches(launches []*models.Launch, options SortOptions) {
	less := func(i, j int) bool {
		a, b := launches[i], launches[j]
		switch strings.ToLower(options.Field) {
		case "state":
			return a.State < b.State
		case "vehicle":
			return a.VehicleID < b.VehicleID
		case "createdat":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.ID < b.ID
		}
	}

	sort.SliceStable(launches, func(i, j int) bool {
		if options.Order == "desc" {
			return less(j, i)
		}
		return less(i, j)
	})
}

// ParseSortOptions parses and validates sort and order parameters,
// falling back to defaults if invalid values are provided
func ParseSortOptions(sortField, order string) SortOptions {
	options := NewSortOptions()

	sortField = strings.ToLower(sortField)
	if sortField != "" && ValidSortFields[sortField] {
		options.Field = sortField
	}

	order = strings.ToLower(order)
	if order != "" && ValidOrders[order] {
		options.Order = order
	}

	return options
}
