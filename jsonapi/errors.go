package jsonapi

import (
	stderrors "errors"
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// ErrorDocument is the top level JSON:API error envelope
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// ErrorObject is a single error member. Status is the HTTP status rendered
// as a string, per the JSON:API error object shape. Detail is either a
// string or, for validation failures, a list of messages for one field.
type ErrorObject struct {
	Status string       `json:"status"`
	Source *ErrorSource `json:"source,omitempty"`
	Title  string       `json:"title"`
	Detail any          `json:"detail"`
}

// ErrorSource locates the offending part of the request
type ErrorSource struct {
	Pointer string `json:"pointer"`
}

// Template is the response shape registered for one failure category
type Template struct {
	Status  int
	Pointer string
	Title   string
	Detail  string
}

// Mapper turns internal errors into JSON:API error documents by looking up
// a template keyed on the error's category. Categories without a
// registration collapse to the internal template so nothing leaks.
type Mapper struct {
	templates map[goerrors.Category]Template
	internal  Template
}

// NewMapper builds a mapper preloaded with the platform's response
// catalogue: authentication, authorization, validation, not-found, and the
// internal fallback.
func NewMapper() *Mapper {
	m := &Mapper{
		templates: map[goerrors.Category]Template{},
		internal: Template{
			Status: 500,
			Title:  "Internal server error",
			Detail: "Something went wrong on our side.",
		},
	}

	m.Register(goerrors.CategoryAuth, Template{
		Status:  401,
		Pointer: "/code",
		Title:   "Authentication code is invalid",
		Detail:  "You must provide valid code in order to exchange it for token.",
	})
	m.Register(goerrors.CategoryAuthz, Template{
		Status:  403,
		Pointer: "/headers/authorization",
		Title:   "Not authorized",
		Detail:  "You have no right to access this resource.",
	})
	m.Register(goerrors.CategoryValidation, Template{
		Status: 422,
		Title:  "Invalid request.",
	})
	m.Register(goerrors.CategoryNotFound, Template{
		Status: 404,
		Title:  "Record not found",
		Detail: "Resource not found.",
	})
	m.Register(goerrors.CategoryConflict, Template{
		Status: 422,
		Title:  "Invalid request.",
	})
	m.Register(goerrors.CategoryBadInput, Template{
		Status: 400,
		Title:  "Malformed request",
		Detail: "The request body could not be parsed.",
	})

	return m
}

// Register installs or replaces the template for a category
func (m *Mapper) Register(kind goerrors.Category, tmpl Template) *Mapper {
	m.templates[kind] = tmpl
	return m
}

// Map resolves an error to its HTTP status and error document
func (m *Mapper) Map(err error) (int, *ErrorDocument) {
	if err == nil {
		return m.internal.Status, singleDocument(m.internal)
	}

	var verrs validation.Errors
	if stderrors.As(err, &verrs) {
		return m.mapFields(validationFields(verrs))
	}

	if repository.IsRecordNotFound(err) {
		tmpl := m.lookup(goerrors.CategoryNotFound)
		return tmpl.Status, singleDocument(tmpl)
	}

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		tmpl := m.lookup(rich.Category)
		if fields, ok := fieldMetadata(rich); ok {
			return m.mapFields(fields)
		}
		return tmpl.Status, singleDocument(tmpl)
	}

	return m.internal.Status, singleDocument(m.internal)
}

func (m *Mapper) lookup(kind goerrors.Category) Template {
	if tmpl, ok := m.templates[kind]; ok {
		return tmpl
	}
	return m.internal
}

// mapFields fans a field violation map out into one error object per
// field, pointing at /data/attributes/<field>. Fields are emitted in name
// order so the document is stable.
func (m *Mapper) mapFields(fields map[string][]string) (int, *ErrorDocument) {
	tmpl := m.lookup(goerrors.CategoryValidation)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := &ErrorDocument{}
	for _, name := range names {
		doc.Errors = append(doc.Errors, ErrorObject{
			Status: strconv.Itoa(tmpl.Status),
			Source: &ErrorSource{Pointer: "/data/attributes/" + name},
			Title:  tmpl.Title,
			Detail: fields[name],
		})
	}

	if len(doc.Errors) == 0 {
		return tmpl.Status, singleDocument(tmpl)
	}

	return tmpl.Status, doc
}

func singleDocument(tmpl Template) *ErrorDocument {
	obj := ErrorObject{
		Status: strconv.Itoa(tmpl.Status),
		Title:  tmpl.Title,
		Detail: tmpl.Detail,
	}
	if tmpl.Pointer != "" {
		obj.Source = &ErrorSource{Pointer: tmpl.Pointer}
	}
	return &ErrorDocument{Errors: []ErrorObject{obj}}
}

func validationFields(verrs validation.Errors) map[string][]string {
	fields := make(map[string][]string, len(verrs))
	for name, ferr := range verrs {
		if ferr == nil {
			continue
		}
		fields[name] = append(fields[name], ferr.Error())
	}
	return fields
}

// fieldMetadata pulls the per-field message map carried by validation
// errors built in the domain layer.
func fieldMetadata(rich *goerrors.Error) (map[string][]string, bool) {
	if rich.Category != goerrors.CategoryValidation &&
		rich.Category != goerrors.CategoryConflict {
		return nil, false
	}
	if rich.Metadata == nil {
		return nil, false
	}

	raw, ok := rich.Metadata["fields"]
	if !ok {
		return nil, false
	}

	switch fields := raw.(type) {
	case map[string][]string:
		return fields, len(fields) > 0
	case map[string]string:
		out := make(map[string][]string, len(fields))
		for name, msg := range fields {
			out[name] = []string{msg}
		}
		return out, len(out) > 0
	}

	return nil, false
}
