package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/adirao/pixelforge/internal/models"
)

var (
	// ErrNoPrompt is returned when the prompt is empty or whitespace.
	ErrNoPrompt = errors.New("no prompt provided")
	// ErrInsufficientCredits is returned when the account balance cannot
	// cover one generation.
	ErrInsufficientCredits = errors.New("not enough credits")
	// ErrGenerationFailed wraps failures of the image model call.
	ErrGenerationFailed = errors.New("image generation failed")
	// ErrUploadFailed wraps failures of the asset upload.
	ErrUploadFailed = errors.New("image upload failed")
)

// UserStore defines the account operations the workflow needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	AdjustCredits(ctx context.Context, id string, delta int) (*models.User, error)
}

// LedgerStore defines the history operations the workflow needs.
type LedgerStore interface {
	Append(ctx context.Context, userID, prompt, imageURL string) error
	Records(ctx context.Context, userID string) ([]models.GenerationRecord, error)
}

// Transactor groups store operations into one atomic unit. Everything done
// with the context passed to fn commits or rolls back together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageModel generates image bytes for a prompt.
type ImageModel interface {
	Generate(ctx context.Context, prompt string) (data []byte, mimeType string, err error)
}

// AssetStore stores image bytes and returns a public URL.
type AssetStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service implements the credit-gated generation workflow.
type Service struct {
	users   UserStore
	ledgers LedgerStore
	tx      Transactor
	model   ImageModel
	assets  AssetStore
}

func NewService(users UserStore, ledgers LedgerStore, tx Transactor, model ImageModel, assets AssetStore) *Service {
	return &Service{users: users, ledgers: ledgers, tx: tx, model: model, assets: assets}
}

// Generate runs one credit-gated generation for the account: balance check,
// model call, asset upload, then ledger append and debit in a single atomic
// unit. A failure at any point leaves balance and ledger untouched. The
// returned user reflects the post-debit balance.
func (s *Service) Generate(ctx context.Context, userID, prompt string) (string, *models.User, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", nil, ErrNoPrompt
	}

	var (
		imageURL string
		updated  *models.User
	)
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.users.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		// The balance check runs before the paid external call so a request
		// that cannot be paid for never reaches the model. The transaction
		// keeps the check and the debit on one snapshot; a concurrent debit
		// of the same account surfaces as a write conflict and re-runs fn.
		if user.Credits <= 0 {
			return ErrInsufficientCredits
		}

		data, mimeType, err := s.model.Generate(txCtx, prompt)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}

		url, err := s.assets.Upload(txCtx, objectKey(mimeType), data, mimeType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}

		if err := s.ledgers.Append(txCtx, userID, prompt, url); err != nil {
			return err
		}
		after, err := s.users.AdjustCredits(txCtx, userID, -models.GenerationCost)
		if err != nil {
			return err
		}

		imageURL = url
		updated = after
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return imageURL, updated, nil
}

// History returns one zero-based page of the account's generation history
// in append order, and the index of the next page when more records remain.
func (s *Service) History(ctx context.Context, userID string, page, limit int) ([]models.GenerationRecord, *int, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	records, err := s.ledgers.Records(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	start := page * limit
	if start >= len(records) {
		return []models.GenerationRecord{}, nil, nil
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}

	var next *int
	if end < len(records) {
		n := page + 1
		next = &n
	}
	return records[start:end], next, nil
}

// DefaultPageSize is the history page size when the client omits the limit.
const DefaultPageSize = 8

func objectKey(mimeType string) string {
	ext := "png"
	if rest, ok := strings.CutPrefix(mimeType, "image/"); ok && rest != "" {
		ext = rest
	}
	return fmt.Sprintf("generated-images/%s.%s", uuid.New().String(), ext)
}
