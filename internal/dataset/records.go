package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// parkRecord and routeRecord mirror the untyped JSON records. Pointers tell a
// missing number apart from a zero.
type parkRecord struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	City           string   `json:"city" validate:"required"`
	State          string   `json:"state" validate:"required"`
	Address        string   `json:"address"`
	ContactPhone   string   `json:"contactPhone"`
	TransportUnion string   `json:"transportUnion"`
	Latitude       *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type routeRecord struct {
	ID                string   `json:"id" validate:"required"`
	DepartureParkID   string   `json:"departureParkId" validate:"required"`
	DepartureParkName string   `json:"departureParkName" validate:"required"`
	Destination       string   `json:"destination" validate:"required"`
	RouteName         string   `json:"routeName" validate:"required"`
	EstimatedFareMin  *float64 `json:"estimatedFareMin" validate:"required,gte=0"`
	EstimatedFareMax  *float64 `json:"estimatedFareMax" validate:"required,gte=0"`
}

func (r parkRecord) toPark() Park {
	return Park{
		ID:             r.ID,
		Name:           r.Name,
		City:           r.City,
		State:          r.State,
		Address:        r.Address,
		ContactPhone:   r.ContactPhone,
		TransportUnion: r.TransportUnion,
		Latitude:       *r.Latitude,
		Longitude:      *r.Longitude,
	}
}

func (r routeRecord) toRoute() Route {
	return Route{
		ID:                r.ID,
		DepartureParkID:   r.DepartureParkID,
		DepartureParkName: r.DepartureParkName,
		Destination:       r.Destination,
		RouteName:         r.RouteName,
		EstimatedFareMin:  *r.EstimatedFareMin,
		EstimatedFareMax:  *r.EstimatedFareMax,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRecord unmarshals raw into out and validates it. The returned problems
// are empty when the record is usable.
func decodeRecord(raw json.RawMessage, out any) []string {
	if err := json.Unmarshal(raw, out); err != nil {
		return []string{fmt.Sprintf("malformed record: %v", err)}
	}
	err := validate.Struct(out)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		problems = append(problems, describeFieldError(fe))
	}
	return problems
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// recordID pulls the id out of a record that may not have decoded, so
// warnings can still name it.
func recordID(raw json.RawMessage) string {
	var probe struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.ID == nil {
		return ""
	}
	return fmt.Sprint(probe.ID)
}
