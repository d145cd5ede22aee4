package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/domain"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed JSON body")

// fieldTypeError is a well-formed body carrying a value of the wrong JSON
// type in one field; it is a validation failure, not a malformed request.
type fieldTypeError struct {
	Field string
}

func (e *fieldTypeError) Error() string {
	return e.Field + " has the wrong type"
}

// flexInt accepts a JSON number or a numeric string, since form-driven
// clients post "3" as readily as 3. Anything else decodes to the zero value
// and is left for validation to reject.
type flexInt struct {
	Value int
	Set   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = flexInt{}
		return nil
	}
	f.Set = true
	f.Value = 0

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return nil
	}
	f.Value = int(n)
	return nil
}

// decodeJSON reads one JSON object from the request body into dst. An empty
// body decodes to the zero value. A field of the wrong type yields a
// *fieldTypeError; anything else unreadable wraps errMalformedBody.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &fieldTypeError{Field: typeErr.Field}
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// writeDecodeError reports a decodeJSON failure: 422 naming the field for a
// type mismatch, 400 otherwise.
func writeDecodeError(w http.ResponseWriter, err error) {
	var typeErr *fieldTypeError
	if errors.As(err, &typeErr) {
		httperrors.RespondValidation(w, []httperrors.FieldError{{Field: typeErr.Field, Message: "has the wrong type"}})
		return
	}
	httperrors.RespondBadRequest(w, err.Error())
}

// pathID parses a positive integer path parameter. Well-formed ids beyond
// the int4 key range cannot name a row and come back as domain.ErrNotFound.
func pathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		return 0, fmt.Errorf("%s %s: %w", name, raw, domain.ErrNotFound)
	case err != nil || id <= 0:
		return 0, fmt.Errorf("%s must be a positive integer", name)
	case id > math.MaxInt32:
		return 0, fmt.Errorf("%s %d: %w", name, id, domain.ErrNotFound)
	}
	return id, nil
}

// writePathIDError answers a pathID failure: 404 for out-of-range ids, 400
// for anything that is not a positive integer.
func writePathIDError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		httperrors.RespondNotFound(w, "")
		return
	}
	httperrors.RespondBadRequest(w, err.Error())
}

// queryPage reads ?page=N; anything missing, unparsable or below 1 is page 1.
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
