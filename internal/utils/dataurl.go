package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedDataURL = errors.New("malformed data URL")

// DataURL is an image embedded as text: "data:<mime>;base64,<payload>".
type DataURL struct {
	MIMEType string
	Data     []byte
}

// ParseDataURL decodes a base64 data URL. Only base64 payloads are accepted.
func ParseDataURL(s string) (DataURL, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: missing data: prefix", ErrMalformedDataURL)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: missing payload", ErrMalformedDataURL)
	}

	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return DataURL{}, fmt.Errorf("%w: payload is not base64", ErrMalformedDataURL)
	}
	if mimeType == "" || !strings.Contains(mimeType, "/") {
		return DataURL{}, fmt.Errorf("%w: missing MIME type", ErrMalformedDataURL)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURL{}, fmt.Errorf("%w: %v", ErrMalformedDataURL, err)
	}
	if len(data) == 0 {
		return DataURL{}, fmt.Errorf("%w: empty payload", ErrMalformedDataURL)
	}

	return DataURL{MIMEType: strings.ToLower(mimeType), Data: data}, nil
}

func (d DataURL) String() string {
	return "data:" + d.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}
