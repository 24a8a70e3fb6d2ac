package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"skilltrack/internal/progression"
	"skilltrack/pkg/validator"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// JSONResponse sends a JSON response and ensures slices are never null.
// Always use it instead of json.NewEncoder(w).Encode(): nil slices become
// [] rather than null, which frontends iterate over without checks.
func JSONResponse(w http.ResponseWriter, data any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(normalizeSlices(data))
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := JSONResponse(w, payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

var timeType = reflect.TypeOf(time.Time{})

// normalizeSlices recursively ensures all nil slices become empty slices
func normalizeSlices(data any) any {
	if data == nil {
		return data
	}

	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() || v.Elem().Type() == timeType {
			return data
		}
		elem := v.Elem()
		result := reflect.New(elem.Type())
		result.Elem().Set(reflect.ValueOf(normalizeSlices(elem.Interface())))
		return result.Interface()

	case reflect.Slice:
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0).Interface()
		}
		result := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			result.Index(i).Set(reflect.ValueOf(normalizeSlices(v.Index(i).Interface())))
		}
		return result.Interface()

	case reflect.Struct:
		if v.Type() == timeType {
			return data
		}
		// types with unexported state are encoded as they are
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				return data
			}
		}
		result := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			switch field.Kind() {
			case reflect.Slice, reflect.Ptr, reflect.Struct:
				normalized := reflect.ValueOf(normalizeSlices(field.Interface()))
				if normalized.IsValid() {
					result.Field(i).Set(normalized)
				}
			default:
				result.Field(i).Set(field)
			}
		}
		return result.Interface()
	}

	return data
}

// decodeJSON reads a JSON body into dst and validates its tags. An empty
// body is accepted when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return err
		}
	}
	return validator.ValidateStruct(dst)
}

// respondWithDecodeError reports a body that could not be decoded. Unknown
// levels and statuses keep their own message.
func respondWithDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, progression.ErrInvalidRatingLevel) || errors.Is(err, progression.ErrInvalidStatus) {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	// validation messages are meant for the client
	respondWithError(w, http.StatusBadRequest, err.Error())
}

// pathID parses a positive numeric path value
func pathID(r *http.Request, name string) (uint, error) {
	return parseID(r.PathValue(name), name)
}

// queryID parses an optional numeric query parameter. Missing means 0.
func queryID(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return parseID(raw, name)
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
