package storage

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rah-0/launchpad/internal/apperr"
	"github.com/rah-0/launchpad/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

////////////////////////
// DATABASE STRUCTURES
////////////////////////

// gormModels is every table the SQL backend migrates
var gormModels = []interface{}{
	&userRecord{},
	&sessionRecord{},
	&missionRecord{},
	&astronautRecord{},
	&vehicleRecord{},
	&launchRecord{},
	&sequenceRecord{},
}

type userRecord struct {
	ID       int    `gorm:"primaryKey;autoIncrement:false"`
	Email    string `gorm:"size:255"`
	NameFull string `gorm:"size:255"`
}

func (userRecord) TableName() string { return "users" }

type sessionRecord struct {
	ID     string `gorm:"primaryKey;size:128"`
	UserID int    `gorm:"index"`
}

func (sessionRecord) TableName() string { return "sessions" }

type missionRecord struct {
	ID             int    `gorm:"primaryKey;autoIncrement:false"`
	OwnerID        int    `gorm:"index"`
	Name           string `gorm:"size:255"`
	Description    string `gorm:"size:1000"`
	Target         string `gorm:"size:255"`
	Archived       bool
	Astronauts     datatypes.JSONSlice[int]
	TimeCreated    time.Time
	TimeLastEdited time.Time
}

func (missionRecord) TableName() string { return "missions" }

type astronautRecord struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	NameFirst string `gorm:"size:127"`
	NameLast  string `gorm:"size:127"`
	Rank      string `gorm:"size:127"`
	Weight    float64
	MissionID *int `gorm:"index"`
}

func (astronautRecord) TableName() string { return "astronauts" }

type vehicleRecord struct {
	ID               int    `gorm:"primaryKey;autoIncrement:false"`
	Name             string `gorm:"size:255"`
	Description      string `gorm:"size:1000"`
	MaxCrewWeight    float64
	MaxPayloadWeight float64
	DryWeight        float64
	ThrustCapacity   float64
	StartingFuel     float64
	Retired          bool
}

func (vehicleRecord) TableName() string { return "launch_vehicles" }

// launchRecord keeps nested launch values in JSON columns; scalar fields used for
// lookups stay as plain indexed columns
type launchRecord struct {
	ID            int `gorm:"primaryKey;autoIncrement:false"`
	Mission       datatypes.JSONType[models.Mission]
	TimeCreated   time.Time
	State         string `gorm:"size:32;index"`
	VehicleID     int    `gorm:"index"`
	RemainingFuel float64
	Payload       datatypes.JSONType[models.Payload]
	Astronauts    datatypes.JSONSlice[int]
	Params        datatypes.JSONType[models.CalculationParameters]
}

func (launchRecord) TableName() string { return "launches" }

type sequenceRecord struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int
}

func (sequenceRecord) TableName() string { return "sequences" }

func toLaunchRecord(l *models.Launch) launchRecord {
	c := l.Clone()
	return launchRecord{
		ID:            c.ID,
		Mission:       datatypes.NewJSONType(c.Mission),
		TimeCreated:   c.CreatedAt,
		State:         string(c.State),
		VehicleID:     c.VehicleID,
		RemainingFuel: c.RemainingFuel,
		Payload:       datatypes.NewJSONType(c.Payload),
		Astronauts:    datatypes.JSONSlice[int](c.Astronauts),
		Params:        datatypes.NewJSONType(c.Params),
	}
}

func (r launchRecord) toModel() *models.Launch {
	astronauts := []int(r.Astronauts)
	if astronauts == nil {
		astronauts = []int{}
	}
	l := &models.Launch{
		ID:            r.ID,
		Mission:       r.Mission.Data(),
		CreatedAt:     r.TimeCreated,
		State:         models.State(r.State),
		VehicleID:     r.VehicleID,
		RemainingFuel: r.RemainingFuel,
		Payload:       r.Payload.Data(),
		Astronauts:    astronauts,
		Params:        r.Params.Data(),
	}
	return l.Clone()
}

////////////////////////
// BACKEND
////////////////////////

// GormBackend is a Backend on top of a SQL database (sqlite or postgres)
type GormBackend struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

var memoryDBSeq atomic.Int64

// OpenSqlite opens a sqlite database at path. An empty path opens a private in-memory
// database.
func OpenSqlite(path string, log zerolog.Logger) (*GormBackend, error) {
	dsn := path
	if dsn == "" {
		dsn = fmt.Sprintf("file:launchpad-%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// sqlite serializes writers anyway; a single connection avoids SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)

	if path == "" {
		log.Info().Msg("Using in-memory SQLite DB")
	} else {
		log.Info().Str("path", path).Msg("Using local SQLite DB")
	}
	return newGormBackend(db, log)
}

// PostgresConfig holds connection settings for the postgres backend
type PostgresConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// OpenPostgres connects to a postgres database
func OpenPostgres(cfg PostgresConfig, log zerolog.Logger) (*GormBackend, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database)

	log.Debug().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Connecting to Postgres DB")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to validate connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	log.Info().Msg("Connected to database")
	return newGormBackend(db, log)
}

func newGormBackend(db *gorm.DB, log zerolog.Logger) (*GormBackend, error) {
	if err := db.AutoMigrate(gormModels...); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &GormBackend{DB: db, Logger: log}, nil
}

func (b *GormBackend) NextLaunchID(ctx context.Context) (int, error) {
	var id int
	err := b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq := sequenceRecord{Name: "launch"}
		if err := tx.Where(sequenceRecord{Name: "launch"}).FirstOrCreate(&seq).Error; err != nil {
			return err
		}
		seq.Value++
		id = seq.Value
		return tx.Save(&seq).Error
	})
	if err != nil {
		return 0, fmt.Errorf("reserving launch id: %w", err)
	}
	return id, nil
}

func (b *GormBackend) SaveLaunch(ctx context.Context, launch *models.Launch) error {
	rec := toLaunchRecord(launch)
	err := b.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("saving launch %d: %w", launch.ID, err)
	}
	return nil
}

func (b *GormBackend) GetLaunch(ctx context.Context, id int) (*models.Launch, error) {
	var rec launchRecord
	err := b.DB.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.BadInput("launch %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading launch %d: %w", id, err)
	}
	return rec.toModel(), nil
}

func (b *GormBackend) ListLaunches(ctx context.Context, opts SortOptions) ([]*models.Launch, error) {
	var recs []launchRecord
	if err := b.DB.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing launches: %w", err)
	}

	launches := make([]*models.Launch, 0, len(recs))
	for _, rec := range recs {
		launches = append(launches, rec.toModel())
	}
	SortLaunches(launches, opts)
	return launches, nil
}

func (b *GormBackend) Clear(ctx context.Context) error {
	err := b.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&launchRecord{}).Error
	if err != nil {
		return fmt.Errorf("clearing launches: %w", err)
	}
	return nil
}

func (b *GormBackend) ResolveMission(ctx context.Context, missionID, userID int) (*models.Mission, error) {
	var rec missionRecord
	err := b.DB.WithContext(ctx).First(&rec, missionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.InaccessibleValue("mission %d is not accessible to user %d", missionID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading mission %d: %w", missionID, err)
	}
	if rec.Archived || rec.OwnerID != userID {
		return nil, apperr.InaccessibleValue("mission %d is not accessible to user %d", missionID, userID)
	}

	astronauts := []int(rec.Astronauts)
	if astronauts == nil {
		astronauts = []int{}
	}
	return &models.Mission{
		ID:          rec.ID,
		OwnerID:     rec.OwnerID,
		Name:        rec.Name,
		Description: rec.Description,
		Target:      rec.Target,
		Archived:    rec.Archived,
		Astronauts:  astronauts,
		CreatedAt:   rec.TimeCreated,
		UpdatedAt:   rec.TimeLastEdited,
	}, nil
}

func (b *GormBackend) ResolveAstronaut(ctx context.Context, astronautID int) (*models.Astronaut, error) {
	var rec astronautRecord
	err := b.DB.WithContext(ctx).First(&rec, astronautID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.BadInput("astronaut %d not found", astronautID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading astronaut %d: %w", astronautID, err)
	}
	return &models.Astronaut{
		ID:        rec.ID,
		NameFirst: rec.NameFirst,
		NameLast:  rec.NameLast,
		Rank:      rec.Rank,
		Weight:    rec.Weight,
		MissionID: rec.MissionID,
	}, nil
}

func (b *GormBackend) ResolveVehicle(ctx context.Context, vehicleID int, checkRetired bool) (*models.LaunchVehicle, error) {
	var rec vehicleRecord
	err := b.DB.WithContext(ctx).First(&rec, vehicleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.BadInput("launch vehicle %d not found", vehicleID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading launch vehicle %d: %w", vehicleID, err)
	}
	if checkRetired && rec.Retired {
		return nil, apperr.BadInput("launch vehicle %d is retired", vehicleID)
	}
	return &models.LaunchVehicle{
		ID:               rec.ID,
		Name:             rec.Name,
		Description:      rec.Description,
		MaxCrewWeight:    rec.MaxCrewWeight,
		MaxPayloadWeight: rec.MaxPayloadWeight,
		DryWeight:        rec.DryWeight,
		ThrustCapacity:   rec.ThrustCapacity,
		StartingFuel:     rec.StartingFuel,
		Retired:          rec.Retired,
	}, nil
}

func (b *GormBackend) ResolveSession(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, apperr.InvalidCredentials("session is not valid")
	}
	var rec sessionRecord
	err := b.DB.WithContext(ctx).Where("id = ?", sessionID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.InvalidCredentials("session is not valid")
	}
	if err != nil {
		return 0, fmt.Errorf("loading session: %w", err)
	}
	return rec.UserID, nil
}

// Seed upserts the directory records of doc in one transaction
func (b *GormBackend) Seed(ctx context.Context, doc *Document) error {
	upsert := clause.OnConflict{UpdateAll: true}

	err := b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range doc.Users {
			rec := userRecord{ID: u.ID, Email: u.Email, NameFull: u.NameFull}
			if err := tx.Clauses(upsert).Create(&rec).Error; err != nil {
				return fmt.Errorf("user %d: %w", u.ID, err)
			}
		}
		for _, s := range doc.Sessions {
			rec := sessionRecord{ID: s.ID, UserID: s.UserID}
			if err := tx.Clauses(upsert).Create(&rec).Error; err != nil {
				return fmt.Errorf("session for user %d: %w", s.UserID, err)
			}
		}
		for _, m := range doc.Missions {
			rec := missionRecord{
				ID:             m.ID,
				OwnerID:        m.OwnerID,
				Name:           m.Name,
				Description:    m.Description,
				Target:         m.Target,
				Archived:       m.Archived,
				Astronauts:     datatypes.JSONSlice[int](m.Astronauts),
				TimeCreated:    m.CreatedAt,
				TimeLastEdited: m.UpdatedAt,
			}
			if err := tx.Clauses(upsert).Create(&rec).Error; err != nil {
				return fmt.Errorf("mission %d: %w", m.ID, err)
			}
		}
		for _, a := range doc.Astronauts {
			rec := astronautRecord{
				ID:        a.ID,
				NameFirst: a.NameFirst,
				NameLast:  a.NameLast,
				Rank:      a.Rank,
				Weight:    a.Weight,
				MissionID: a.MissionID,
			}
			if err := tx.Clauses(upsert).Create(&rec).Error; err != nil {
				return fmt.Errorf("astronaut %d: %w", a.ID, err)
			}
		}
		for _, v := range doc.Vehicles {
			rec := vehicleRecord{
				ID:               v.ID,
				Name:             v.Name,
				Description:      v.Description,
				MaxCrewWeight:    v.MaxCrewWeight,
				MaxPayloadWeight: v.MaxPayloadWeight,
				DryWeight:        v.DryWeight,
				ThrustCapacity:   v.ThrustCapacity,
				StartingFuel:     v.StartingFuel,
				Retired:          v.Retired,
			}
			if err := tx.Clauses(upsert).Create(&rec).Error; err != nil {
				return fmt.Errorf("launch vehicle %d: %w", v.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	b.Logger.Debug().
		Int("missions", len(doc.Missions)).
		Int("astronauts", len(doc.Astronauts)).
		Int("vehicles", len(doc.Vehicles)).
		Msg("Seeded directory")
	return nil
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
