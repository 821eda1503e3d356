package db

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/generation"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteRepository implements generation.Repository
type SQLiteRepository struct {
	db *gorm.DB
}

// GenerationModel is the GORM model for a generation record
type GenerationModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Text        string `gorm:"not null"`
	Logo        string
	Caption     bool
	OutputPath  string `gorm:"not null"`
	WrittenPath string `gorm:"not null"`
	Verified    bool
	CreatedAt   time.Time `gorm:"index"`
}

// GormLogger routes GORM logs through the application logger
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations. Record-not-found is expected and logged at debug.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteRepository opens (and migrates) the SQLite database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{},
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	if err := db.AutoMigrate(&GenerationModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: db}, nil
}

// Store persists a generation record
func (r *SQLiteRepository) Store(ctx context.Context, record *generation.Record) error {
	model := toModel(record)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		appLogger.CtxError(ctx, "Failed to insert generation", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataID: record.ID,
			},
		})
		return err
	}

	appLogger.CtxDebug(ctx, "Generation stored", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStore,
		Data: map[string]interface{}{
			constant.DataID: record.ID,
		},
	})

	return nil
}

// FindByID retrieves a generation record, or generation.ErrNotFound
func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*generation.Record, error) {
	var model GenerationModel

	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		appLogger.CtxInfo(ctx, "Generation not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Data: map[string]interface{}{
				constant.DataID: id,
			},
		})
		return nil, generation.ErrNotFound
	}
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up generation", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataID: id,
			},
		})
		return nil, err
	}

	return fromModel(model), nil
}

// List returns up to limit records, newest first
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]*generation.Record, error) {
	var models []GenerationModel

	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		appLogger.CtxError(ctx, "Failed to list generations", appLogger.LoggerInfo{
			ContextFunction: constant.CtxList,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBList,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataLimit: limit,
			},
		})
		return nil, err
	}

	records := make([]*generation.Record, 0, len(models))
	for _, m := range models {
		records = append(records, fromModel(m))
	}
	return records, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}

func toModel(record *generation.Record) GenerationModel {
	return GenerationModel{
		ID:          record.ID,
		Text:        record.Text,
		Logo:        record.Logo,
		Caption:     record.Caption,
		OutputPath:  record.OutputPath,
		WrittenPath: record.WrittenPath,
		Verified:    record.Verified,
		CreatedAt:   record.CreatedAt,
	}
}

func fromModel(m GenerationModel) *generation.Record {
	return &generation.Record{
		ID:          m.ID,
		Text:        m.Text,
		Logo:        m.Logo,
		Caption:     m.Caption,
		OutputPath:  m.OutputPath,
		WrittenPath: m.WrittenPath,
		Verified:    m.Verified,
		CreatedAt:   m.CreatedAt,
	}
}
