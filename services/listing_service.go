package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"basha-backend/logging"
	"basha-backend/models"
)

var ErrInvalidStep = errors.New("invalid_step")

// ListingValidationError lists every wizard step that failed.
type ListingValidationError struct {
	Steps []models.StepValidation
}

func (e *ListingValidationError) Error() string {
	names := make([]string, 0, len(e.Steps))
	for _, st := range e.Steps {
		names = append(names, st.Name)
	}
	return "listing invalid: " + strings.Join(names, ", ")
}

func newListingValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("area", func(fl validator.FieldLevel) bool {
		return models.IsKnownArea(fl.Field().String())
	})
	_ = v.RegisterValidation("amenity", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.AmenityOptions, fl.Field().String())
	})
	_ = v.RegisterValidation("rule", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.RuleOptions, fl.Field().String())
	})
	return v
}

// ListingService runs the owner's three-step listing wizard.
type ListingService struct {
	catalog  *CatalogService
	images   *ImageService
	validate *validator.Validate
}

func NewListingService(catalog *CatalogService, images *ImageService) *ListingService {
	return &ListingService{catalog: catalog, images: images, validate: newListingValidator()}
}

// ValidateStep checks the fields that belong to one wizard step.
func (s *ListingService) ValidateStep(ctx context.Context, step int, in models.ListingInput) (models.StepValidation, error) {
	if step < models.StepBasicInfo || step > models.StepPhotosLocation {
		return models.StepValidation{}, ErrInvalidStep
	}
	in.ApplyDefaults()

	var part interface{}
	switch step {
	case models.StepBasicInfo:
		part = in.ListingBasicInfo
	case models.StepDetails:
		part = in.ListingDetails
	case models.StepPhotosLocation:
		part = in.ListingPhotosLocation
	}

	result := models.StepValidation{Step: step, Name: models.ListingSteps[step-1], Valid: true}
	err := s.validate.StructCtx(ctx, part)
	if err == nil {
		return result, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return result, fmt.Errorf("validate step %d: %w", step, err)
	}
	result.Valid = false
	for _, fe := range verrs {
		result.Errors = append(result.Errors, models.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return result, nil
}

// Create validates all steps and prepends the new room to the catalog.
func (s *ListingService) Create(ctx context.Context, sess *Session, in models.ListingInput) (*models.Room, error) {
	if sess == nil {
		return nil, ErrAuthRequired
	}
	if !sess.User.IsOwner() {
		return nil, ErrOwnerOnly
	}
	in.ApplyDefaults()

	var failed []models.StepValidation
	for step := models.StepBasicInfo; step <= models.StepPhotosLocation; step++ {
		res, err := s.ValidateStep(ctx, step, in)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			failed = append(failed, res)
		}
	}
	if len(failed) > 0 {
		return nil, &ListingValidationError{Steps: failed}
	}

	room := &models.Room{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Area:        in.Area,
		Location: models.Location{
			Lat:     models.DefaultListingLat,
			Lng:     models.DefaultListingLng,
			Address: in.Address,
		},
		Type:               in.Type,
		Gender:             in.Gender,
		Amenities:          datatypes.NewJSONSlice(nonNil(in.Amenities)),
		Rules:              datatypes.NewJSONSlice(nonNil(in.Rules)),
		OwnerID:            sess.User.ID,
		OwnerName:          sess.User.Name,
		IsVerified:         false,
		IsAvailable:        true,
		NearbyUniversities: datatypes.NewJSONSlice(slices.Clone(models.DefaultNearby)),
		CreatedAt:          time.Now(),
	}
	if in.Lat != nil {
		room.Location.Lat = *in.Lat
	}
	if in.Lng != nil {
		room.Location.Lng = *in.Lng
	}

	images := make([]string, 0, len(in.Photos))
	stored := make([]string, 0, len(in.Photos))
	for _, photo := range in.Photos {
		img, err := s.images.SaveBase64Image(ctx, photo, "listings/"+room.ID)
		if err != nil {
			s.images.Remove(ctx, stored...)
			return nil, err
		}
		stored = append(stored, img.Key)
		images = append(images, img.URL)
	}
	if len(images) == 0 {
		images = append(images, models.PlaceholderImageURL)
	}
	room.Images = datatypes.NewJSONSlice(images)

	if err := s.catalog.Prepend(ctx, room); err != nil {
		s.images.Remove(ctx, stored...)
		return nil, err
	}
	logging.Audit(ctx, logging.ActionListingCreate, sess.User.ID, "listing created")
	return room, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
