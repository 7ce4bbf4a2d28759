package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"frontline/internal/domain"
	"frontline/internal/pkg/validator"
	"frontline/internal/repository"
)

const PageSize = 30

type Service struct {
	forms       FormRepository
	codes       CodeGenerator
	frontendURL string
}

func NewService(forms FormRepository, codes CodeGenerator, frontendURL string) *Service {
	return &Service{
		forms:       forms,
		codes:       codes,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// RedirectURL is the detail page a form's QR code points to.
func (s *Service) RedirectURL(id string) string {
	return fmt.Sprintf("%s/form-details/%s?qr=true", s.frontendURL, id)
}

// Create validates the request, allocates the id, renders the code for it and
// only then writes the record. Nothing is stored if any step fails.
func (s *Service) Create(ctx context.Context, req CreateFormRequest) (*domain.Form, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	f := &domain.Form{
		ID:              domain.NewFormID(),
		AreticalNo:      string(req.AreticalNo),
		Name:            string(req.Name),
		Date:            string(req.Date),
		WarpDetails:     req.WarpDetails,
		WeftDetails:     req.WeftDetails,
		DyingMillName:   string(req.DyingMillName),
		FabricsShortage: string(req.FabricsShortage),
	}

	code, err := s.codes.DataURI(s.RedirectURL(f.ID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeGeneration, err)
	}
	f.Code = code

	if err := s.forms.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns the given page, newest first. Pages below 1 are treated as 1.
func (s *Service) List(ctx context.Context, page int) (*FormPage, error) {
	if page < 1 {
		page = 1
	}

	forms, err := s.forms.List(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.forms.Count(ctx)
	if err != nil {
		return nil, err
	}

	if forms == nil {
		forms = []domain.Form{}
	}
	return &FormPage{
		Forms:      forms,
		Page:       page,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}, nil
}

// GetByID treats ids that are not ObjectIDs as unknown.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Form, error) {
	if !domain.IsValidFormID(id) {
		return nil, ErrNotFound
	}
	f, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return f, nil
}

// Replace overwrites the full field set. Every required key must be present
// in the body; values are not otherwise checked.
func (s *Service) Replace(ctx context.Context, id string, req *ReplaceFormRequest) (*domain.Form, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	if !domain.IsValidFormID(id) {
		return nil, ErrNotFound
	}

	f, err := s.forms.Replace(ctx, id, req.replacement())
	if err != nil {
		return nil, mapNotFound(err)
	}
	return f, nil
}

// UpdateRates touches warpRate and weftRate only, and is the only path that
// writes them.
func (s *Service) UpdateRates(ctx context.Context, id string, req UpdateRatesRequest) (*domain.Form, error) {
	u := req.update()
	if u.Empty() {
		return nil, ErrNoRateFields
	}
	if !domain.IsValidFormID(id) {
		return nil, ErrNotFound
	}

	f, err := s.forms.UpdateRates(ctx, id, u)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !domain.IsValidFormID(id) {
		return ErrNotFound
	}
	return mapNotFound(s.forms.Delete(ctx, id))
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
