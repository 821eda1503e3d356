package generation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/infrastructure/cache"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
)

var (
	ErrEmptyText = errors.New(constant.ErrEmptyText)
	ErrEmptyID   = errors.New(constant.ErrEmptyGenerationID)
	ErrNotFound  = errors.New(constant.ErrGenerationNotFound)
)

// Record is the outcome of one composition
type Record struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Logo        string    `json:"logo,omitempty"`
	Caption     bool      `json:"caption"`
	OutputPath  string    `json:"output_path"`
	WrittenPath string    `json:"written_path"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// Request asks for a QR code. Logo is a file name inside the logo directory;
// empty means no logo.
type Request struct {
	Text    string
	Logo    string
	Caption bool
}

// Repository defines the interface for data persistence operations
type Repository interface {
	Store(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit int) ([]*Record, error)
}

// Composer is the part of composer.Composer the service drives
type Composer interface {
	ComposePlain(ctx context.Context, text, outputPath string) (bool, error)
	ComposeWithLogo(ctx context.Context, logoPath, text, outputPath string, printCaption bool) (bool, error)
}

// Service runs composition requests and keeps a history of them
type Service struct {
	repo      Repository
	cache     *cache.NamespaceLRU[*Record]
	composer  Composer
	logoDir   string
	outputDir string
	newID     func() string
	now       func() time.Time
}

// NewService creates a new generation service
func NewService(repo Repository, lru *cache.NamespaceLRU[*Record], c Composer, logoDir, outputDir string) *Service {
	logger.Debug("Creating generation service", logger.LoggerInfo{
		ContextFunction: constant.CtxGeneration,
		Data: map[string]interface{}{
			constant.DataService: "generation",
		},
	})

	return &Service{
		repo:      repo,
		cache:     lru,
		composer:  c,
		logoDir:   logoDir,
		outputDir: outputDir,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Generate composes the requested QR code into the output directory and
// records the outcome. A logo that breaks the code is not an error: the
// record comes back with Verified false and WrittenPath pointing at the
// broken image.
func (s *Service) Generate(ctx context.Context, req Request) (*Record, error) {
	logger.CtxDebug(ctx, "Generating QR code", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataText:    req.Text,
			constant.DataLogo:    req.Logo,
			constant.DataCaption: req.Caption,
		},
	})

	if req.Text == "" {
		logger.CtxWarn(ctx, constant.ErrEmptyText, logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeGenEmptyText,
				Message: constant.ErrEmptyText,
				Type:    constant.ErrTypeValidation,
			},
		})
		return nil, ErrEmptyText
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		logger.CtxError(ctx, "Failed to create output directory", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeGenOutputDirErr,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataPath: s.outputDir,
			},
		})
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	record := &Record{
		ID:        s.newID(),
		Text:      req.Text,
		Caption:   req.Caption,
		CreatedAt: s.now(),
	}
	record.OutputPath = filepath.Join(s.outputDir, record.ID+constant.PNGExtension)

	var (
		ok  bool
		err error
	)
	if req.Logo == "" {
		ok, err = s.composer.ComposePlain(ctx, req.Text, record.OutputPath)
	} else {
		// Only bare names are honoured so requests cannot reach outside logoDir
		record.Logo = filepath.Base(req.Logo)
		ok, err = s.composer.ComposeWithLogo(ctx, filepath.Join(s.logoDir, record.Logo), req.Text, record.OutputPath, req.Caption)
	}
	if err != nil {
		logger.CtxError(ctx, "Failed to compose QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeGenCompose,
				Message: err.Error(),
				Type:    constant.ErrTypeDomain,
			},
			Data: map[string]interface{}{
				constant.DataID: record.ID,
			},
		})
		return nil, err
	}

	record.Verified = ok
	record.WrittenPath = record.OutputPath
	if !ok {
		record.WrittenPath = composer.BrokenPath(record.OutputPath)
	}

	if err := s.repo.Store(ctx, record); err != nil {
		logger.CtxError(ctx, "Failed to store generation", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeGenStore,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataID: record.ID,
			},
		})
		return nil, err
	}

	s.cache.Set(constant.GenerationNamespace, record.ID, record)

	logger.CtxInfo(ctx, "QR code generation recorded", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataID:          record.ID,
			constant.DataWrittenPath: record.WrittenPath,
			constant.DataVerified:    record.Verified,
		},
	})

	return record, nil
}

// Get returns a generation record by id
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		logger.CtxWarn(ctx, constant.ErrEmptyGenerationID, logger.LoggerInfo{
			ContextFunction: constant.CtxGetGeneration,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeGenEmptyID,
				Message: constant.ErrEmptyGenerationID,
				Type:    constant.ErrTypeValidation,
			},
		})
		return nil, ErrEmptyID
	}

	if record, found := s.cache.Get(constant.GenerationNamespace, id); found {
		logger.CtxDebug(ctx, "Generation retrieved from cache", logger.LoggerInfo{
			ContextFunction: constant.CtxGetGeneration,
			Data: map[string]interface{}{
				constant.DataID: id,
			},
		})
		return record, nil
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to find generation", logger.LoggerInfo{
			ContextFunction: constant.CtxGetGeneration,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeGenNotFound,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
			Data: map[string]interface{}{
				constant.DataID: id,
			},
		})
		return nil, err
	}

	s.cache.Set(constant.GenerationNamespace, id, record)
	return record, nil
}

// List returns up to limit records, newest first
func (s *Service) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	logger.CtxDebug(ctx, "Generations listed", logger.LoggerInfo{
		ContextFunction: constant.CtxListGenerations,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
			constant.DataCount: len(records),
		},
	})

	return records, nil
}
