package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "Unable to find 'missingno'",
			expected: "NOT_FOUND: Unable to find 'missingno'",
		},
		{
			name:     "missing localized text",
			code:     errors.CodeMissingLocalizedText,
			message:  "no english flavor text",
			expected: "MISSING_LOCALIZED_TEXT: no english flavor text",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.Unavailable("species lookup failed").
		WithMeta("name", "ditto").
		WithMeta("status", 502)

	s.Assert().Equal("ditto", err.Meta["name"])
	s.Assert().Equal(502, err.Meta["status"])

	err2 := errors.Internal("server error").
		WithMetaMap(map[string]interface{}{
			"request_id": "abc",
			"upstream":   "pokeapi",
		})

	s.Assert().Equal("abc", err2.Meta["request_id"])
	s.Assert().Equal("pokeapi", err2.Meta["upstream"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to fetch species")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to fetch species", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("species not found")
	wrapped := errors.Wrap(baseErr, "lookup failed")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("lookup failed", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCodeCopiesMeta() {
	baseErr := errors.MissingLocalizedText("no english text").WithMeta("languages", []string{"de"})
	wrapped := errors.WrapWithCode(baseErr, errors.CodeInternal, "species lookup failed")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal([]string{"de"}, wrapped.Meta["languages"])
	s.Assert().True(errors.IsMissingLocalizedText(wrapped.Unwrap()))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"ResourceExhausted", func() *errors.Error { return errors.ResourceExhausted("test") }, errors.CodeResourceExhausted},
		{"MalformedUpstreamData", func() *errors.Error { return errors.MalformedUpstreamData("test") }, errors.CodeMalformedUpstreamData},
		{"MissingLocalizedText", func() *errors.Error { return errors.MissingLocalizedText("test") }, errors.CodeMissingLocalizedText},
		{"InvalidResponseShape", func() *errors.Error { return errors.InvalidResponseShape("test") }, errors.CodeInvalidResponseShape},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.NotFoundf("Unable to find '%s'", "mewthree")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("Unable to find 'mewthree'", err.Message)

	err2 := errors.MalformedUpstreamDataf("field %q is missing", "name")
	s.Assert().Equal(errors.CodeMalformedUpstreamData, err2.Code)
	s.Assert().Equal(`field "name" is missing`, err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("other")
	err3 := errors.Unavailable("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
	s.Assert().True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	rateLimited := errors.ResourceExhausted("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(rateLimited))

	s.Assert().True(errors.IsResourceExhausted(rateLimited))
	s.Assert().False(errors.IsUnavailable(rateLimited))
	s.Assert().True(errors.IsInvalidResponseShape(errors.InvalidResponseShape("x")))
	s.Assert().True(errors.IsMalformedUpstreamData(errors.MalformedUpstreamData("x")))
	s.Assert().True(errors.IsCanceled(errors.WrapWithCode(fmt.Errorf("context canceled"), errors.CodeCanceled, "x")))
	s.Assert().False(errors.IsCanceled(errors.Unavailable("x")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.NotFound("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestCodeFromHTTPStatus() {
	testCases := []struct {
		status   int
		expected errors.Code
	}{
		{http.StatusOK, errors.CodeOK},
		{http.StatusNotFound, errors.CodeNotFound},
		{http.StatusBadRequest, errors.CodeInvalidArgument},
		{http.StatusTooManyRequests, errors.CodeResourceExhausted},
		{http.StatusServiceUnavailable, errors.CodeUnavailable},
		{http.StatusBadGateway, errors.CodeUnavailable},
		{http.StatusGatewayTimeout, errors.CodeUnavailable},
		{http.StatusRequestTimeout, errors.CodeInternal},
		{http.StatusInternalServerError, errors.CodeInternal},
		{http.StatusTeapot, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			s.Assert().Equal(tc.expected, errors.CodeFromHTTPStatus(tc.status))
		})
	}
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeCanceled, http.StatusRequestTimeout},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeResourceExhausted, http.StatusTooManyRequests},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
		{errors.CodeMissingLocalizedText, http.StatusBadGateway},
		{errors.CodeInvalidResponseShape, http.StatusBadGateway},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}
