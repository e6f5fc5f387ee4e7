// Package codec translates parameter sets into the task wire formats and decodes task output.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"unicode/utf8"

	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// DecodeFailure reports that task stdout is not exactly one JSON document.
// It matches domain.ErrDecodeFailed with errors.Is.
type DecodeFailure struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *DecodeFailure) Error() string {
	msg := domain.ErrDecodeFailed.Error() + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying parser error, if any.
func (e *DecodeFailure) Unwrap() error {
	return e.Err
}

// Is reports whether target is domain.ErrDecodeFailed.
func (e *DecodeFailure) Is(target error) bool {
	return target == domain.ErrDecodeFailed //nolint:errorlint // sentinel identity
}

// EncodeEnv returns the parameters as environment variables named prefix+key.
// Strings are passed verbatim; every other value, null included, is JSON-encoded.
// Keys missing from params produce no variable at all.
func EncodeEnv(params domain.ParameterSet, prefix string) (map[string]string, error) {
	env := make(map[string]string, params.Len())
	for key, value := range params.Map() {
		if s, ok := value.(string); ok {
			env[prefix+key] = s
			continue
		}
		data, err := marshal(value)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrEncodeFailed, err.Error()), "parameter", key)
		}
		env[prefix+key] = string(data)
	}
	return env, nil
}

// EncodeStdin returns the parameters as a single JSON object. An empty set encodes as {}.
func EncodeStdin(params domain.ParameterSet) ([]byte, error) {
	data, err := marshal(params.Map())
	if err != nil {
		return nil, zerr.Wrap(domain.ErrEncodeFailed, err.Error())
	}
	return data, nil
}

// DecodeStdout parses the complete task output as one JSON document.
// Numbers are kept as json.Number. Empty, truncated, non-UTF-8 output or data
// following the document is reported as a *DecodeFailure.
func DecodeStdout(stdout []byte) (any, error) {
	if !utf8.Valid(stdout) {
		return nil, &DecodeFailure{Reason: "output is not valid UTF-8"}
	}
	if len(bytes.TrimSpace(stdout)) == 0 {
		return nil, &DecodeFailure{Reason: "output is empty"}
	}

	dec := json.NewDecoder(bytes.NewReader(stdout))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeFailure{Reason: "malformed JSON", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeFailure{Reason: "unexpected data after JSON document", Err: err}
	}
	return doc, nil
}

// marshal encodes v without HTML escaping so values reach the task as written.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
