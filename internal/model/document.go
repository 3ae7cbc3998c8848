package model

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DocumentKind classifies a lesson's document reference.
type DocumentKind int

const (
	// DocumentLink is an external link opened in a new browsing context.
	DocumentLink DocumentKind = iota + 1
	// DocumentEmbedded is a PDF carried inline as a base64 data URI.
	DocumentEmbedded
)

const (
	pdfMediaType  = "application/pdf"
	linkDomain    = "sharepoint.com"
	linkScheme    = "sharepoint"
	dataScheme    = "data:"
	dataURIPrefix = dataScheme + pdfMediaType
)

// DocumentRef is a parsed pdfPath.
type DocumentRef struct {
	Kind DocumentKind
	URL  string // link target, or the raw data URI for embedded documents
	Data []byte // decoded PDF, embedded documents only
}

// ParseDocumentRef classifies and checks a pdfPath value. Links must be
// sharepoint://host/... or an http(s) URL whose host is sharepoint.com or a
// subdomain of it; embedded documents must be non-empty base64
// application/pdf data URIs.
func ParseDocumentRef(ref string) (*DocumentRef, error) {
	if strings.HasPrefix(strings.ToLower(ref), dataScheme) {
		data, err := decodeDataURI(ref)
		if err != nil {
			return nil, err
		}
		return &DocumentRef{Kind: DocumentEmbedded, URL: ref, Data: data}, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document link: %v", ErrValidation, err)
	}
	switch strings.ToLower(u.Scheme) {
	case linkScheme:
		if u.Host != "" {
			return &DocumentRef{Kind: DocumentLink, URL: ref}, nil
		}
	case "http", "https":
		host := strings.ToLower(u.Hostname())
		if host == linkDomain || strings.HasSuffix(host, "."+linkDomain) {
			return &DocumentRef{Kind: DocumentLink, URL: ref}, nil
		}
	}
	return nil, fmt.Errorf("%w: document link must be a SharePoint URL: %q", ErrValidation, ref)
}

func decodeDataURI(ref string) ([]byte, error) {
	header, payload, ok := strings.Cut(ref[len(dataScheme):], ",")
	params := strings.Split(header, ";")
	if !ok || !strings.EqualFold(params[0], pdfMediaType) {
		return nil, fmt.Errorf("%w: embedded document must be a %s data URI", ErrValidation, pdfMediaType)
	}
	if len(params) < 2 || params[len(params)-1] != "base64" {
		return nil, fmt.Errorf("%w: embedded document must be base64 encoded", ErrValidation)
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: embedded document is empty", ErrValidation)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: embedded document payload: %v", ErrValidation, err)
	}
	return data, nil
}

// EncodePDF wraps raw PDF bytes as a data URI suitable for pdfPath.
func EncodePDF(data []byte) (string, error) {
	if ct := http.DetectContentType(data); ct != pdfMediaType {
		return "", fmt.Errorf("%w: expected a PDF file, got %s", ErrValidation, ct)
	}
	return dataURIPrefix + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// MediaType is the content type served for embedded documents.
func (r *DocumentRef) MediaType() string {
	return pdfMediaType
}
