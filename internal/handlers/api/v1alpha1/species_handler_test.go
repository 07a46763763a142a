package v1alpha1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/api/v1alpha1"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/species"
	speciesmock "github.com/KirkDiggler/pokedex-api/internal/orchestrators/species/mock"
)

type SpeciesHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockSpecies *speciesmock.MockService
	mux         *http.ServeMux
}

func TestSpeciesHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SpeciesHandlerTestSuite))
}

func (s *SpeciesHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSpecies = speciesmock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewSpeciesHandler(&v1alpha1.SpeciesHandlerConfig{
		SpeciesService: s.mockSpecies,
	})
	s.Require().NoError(err)

	s.mux = http.NewServeMux()
	handler.Register(s.mux)
	s.mux.HandleFunc("/", handler.RouteNotFound)
}

func (s *SpeciesHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SpeciesHandlerTestSuite) serve(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *SpeciesHandlerTestSuite) TestGetSpecies_Success() {
	s.mockSpecies.EXPECT().
		GetSpecies(gomock.Any(), &species.GetSpeciesInput{Name: "ditto"}).
		Return(&species.GetSpeciesOutput{
			Species: &entities.Species{
				Name:        "ditto",
				Description: "It can transform.",
				Habitat:     "urban",
			},
		}, nil)

	rec := s.serve("/pokemon/ditto")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.JSONEq(`{"name":"ditto","description":"It can transform.","habitat":"urban","isLegendary":false}`,
		rec.Body.String())
}

func (s *SpeciesHandlerTestSuite) TestGetTranslatedSpecies_Success() {
	s.mockSpecies.EXPECT().
		GetSpecies(gomock.Any(), &species.GetSpeciesInput{Name: "mewtwo", Translate: true}).
		Return(&species.GetSpeciesOutput{
			Species: &entities.Species{
				Name:        "mewtwo",
				Description: "Created by a scientist, it was.",
				Habitat:     "rare",
				IsLegendary: true,
			},
			Tone:       entities.ToneYoda,
			Translated: true,
		}, nil)

	rec := s.serve("/pokemon/translated/mewtwo")

	s.Equal(http.StatusOK, rec.Code)
	var body v1alpha1.SpeciesResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Created by a scientist, it was.", body.Description)
	s.True(body.IsLegendary)
}

func (s *SpeciesHandlerTestSuite) TestGetSpecies_Errors() {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "not found",
			err:            errors.NotFoundf("Unable to find '%s'", "missingno"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"message":"Unable to find 'missingno'"}`,
		},
		{
			name:           "invalid argument",
			err:            errors.InvalidArgument("species name is required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"species name is required"}`,
		},
		{
			name:           "internal hides detail",
			err:            errors.WrapWithCode(errors.Unavailable("pokeapi.co: connection refused"), errors.CodeInternal, "lookup failed"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error"}`,
		},
		{
			name:           "upstream code leaking through still hides detail",
			err:            errors.MissingLocalizedText("no en entry"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error"}`,
		},
		{
			name:           "plain error",
			err:            context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"message":"Internal server error"}`,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockSpecies.EXPECT().
				GetSpecies(gomock.Any(), &species.GetSpeciesInput{Name: "missingno"}).
				Return(nil, tc.err)

			rec := s.serve("/pokemon/missingno")

			s.Equal(tc.expectedStatus, rec.Code)
			s.JSONEq(tc.expectedBody, rec.Body.String())
		})
	}
}

func (s *SpeciesHandlerTestSuite) TestRouteNotFound() {
	for _, path := range []string{"/", "/pokemon", "/pokemon/", "/pokemon/translated/", "/pokemon/a/b/c"} {
		s.Run(path, func() {
			rec := s.serve(path)

			s.Equal(http.StatusNotFound, rec.Code)
			var body v1alpha1.RouteNotFoundResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			s.Equal("Route not found", body.Message)
			s.Equal([]string{"/pokemon/<name>", "/pokemon/translated/<name>"}, body.Routes)
			s.Len(body.Examples, 2)
		})
	}
}

func (s *SpeciesHandlerTestSuite) TestWrongMethodIsRouteNotFound() {
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pokemon/ditto", nil))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *SpeciesHandlerTestSuite) TestNewSpeciesHandler_RequiresService() {
	_, err := v1alpha1.NewSpeciesHandler(&v1alpha1.SpeciesHandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}
