package species_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	funtranslationsmock "github.com/KirkDiggler/pokedex-api/internal/clients/funtranslations/mock"
	pokeapimock "github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi/mock"
	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
	"github.com/KirkDiggler/pokedex-api/internal/metrics"
	"github.com/KirkDiggler/pokedex-api/internal/orchestrators/species"
	"github.com/KirkDiggler/pokedex-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite

	ctrl          *gomock.Controller
	speciesClient *pokeapimock.MockClient
	toneClient    *funtranslationsmock.MockClient
	logs          *observer.ObservedLogs
	orchestrator  species.Service
	ctx           context.Context

	mewtwo    *entities.Species
	diglett   *entities.Species
	bulbasaur *entities.Species
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.speciesClient = pokeapimock.NewMockClient(s.ctrl)
	s.toneClient = funtranslationsmock.NewMockClient(s.ctrl)
	s.ctx = context.Background()

	core, logs := observer.New(zapcore.DebugLevel)
	s.logs = logs

	orchestrator, err := species.NewOrchestrator(&species.Config{
		SpeciesClient: s.speciesClient,
		ToneClient:    s.toneClient,
		Logger:        zap.New(core),
		Metrics:       metrics.New(),
	})
	s.Require().NoError(err)
	s.orchestrator = orchestrator

	s.mewtwo = &entities.Species{
		Name:        "mewtwo",
		Description: testutils.MewtwoDescription,
		Habitat:     "rare",
		IsLegendary: true,
	}
	s.diglett = &entities.Species{
		Name:        "diglett",
		Description: testutils.DiglettDescription,
		Habitat:     entities.HabitatCave,
	}
	s.bulbasaur = &entities.Species{
		Name:        "bulbasaur",
		Description: testutils.BulbasaurDescription,
		Habitat:     "grassland",
	}
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestratorRequiresClients() {
	_, err := species.NewOrchestrator(&species.Config{ToneClient: s.toneClient})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "SpeciesClient")

	_, err = species.NewOrchestrator(nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGetSpeciesPlain() {
	s.speciesClient.EXPECT().GetSpecies(s.ctx, "mewtwo").Return(s.mewtwo, nil)

	output, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{Name: "mewtwo"})
	s.Require().NoError(err)
	s.Assert().Equal(s.mewtwo, output.Species)
	s.Assert().False(output.Translated)
	s.Assert().True(output.Tone.IsZero())
}

func (s *OrchestratorTestSuite) TestGetSpeciesTrimsName() {
	s.speciesClient.EXPECT().GetSpecies(s.ctx, "ditto").
		Return(&entities.Species{Name: "ditto", Description: testutils.DittoDescription}, nil)

	output, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{Name: "  ditto "})
	s.Require().NoError(err)
	s.Assert().Equal("ditto", output.Species.Name)
}

func (s *OrchestratorTestSuite) TestGetSpeciesEmptyName() {
	for _, name := range []string{"", "   "} {
		_, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{Name: name})
		s.Require().Error(err)
		s.Assert().True(errors.IsInvalidArgument(err))
	}
}

func (s *OrchestratorTestSuite) TestGetSpeciesTranslated() {
	testCases := []struct {
		name       string
		species    func() *entities.Species
		tone       entities.Tone
		translated string
	}{
		{
			name:       "legendary gets yoda",
			species:    func() *entities.Species { return s.mewtwo },
			tone:       entities.ToneYoda,
			translated: testutils.MewtwoAsYoda,
		},
		{
			name:       "cave dweller gets yoda",
			species:    func() *entities.Species { return s.diglett },
			tone:       entities.ToneYoda,
			translated: testutils.DiglettAsYoda,
		},
		{
			name:       "everything else gets shakespeare",
			species:    func() *entities.Species { return s.bulbasaur },
			tone:       entities.ToneShakespeare,
			translated: testutils.BulbasaurAsShakespeare,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			original := tc.species()
			s.speciesClient.EXPECT().GetSpecies(s.ctx, original.Name).Return(original, nil)
			s.toneClient.EXPECT().Translate(s.ctx, original.Description, tc.tone).Return(tc.translated, nil)

			output, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{
				Name:      original.Name,
				Translate: true,
			})
			s.Require().NoError(err)
			s.Assert().True(output.Translated)
			s.Assert().Equal(tc.tone, output.Tone)
			s.Assert().Equal(tc.translated, output.Species.Description)
			s.Assert().Equal(original.Name, output.Species.Name)
			s.Assert().Equal(original.Habitat, output.Species.Habitat)
			s.Assert().Equal(original.IsLegendary, output.Species.IsLegendary)
			s.Assert().NotEqual(tc.translated, original.Description, "lookup result must not be mutated")
		})
	}
}

func (s *OrchestratorTestSuite) TestGetSpeciesTranslationFallback() {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "rate limited", err: errors.ResourceExhausted("translation rate limit reached")},
		{name: "unavailable", err: errors.Unavailable("translation returned 500")},
		{name: "invalid response shape", err: errors.InvalidResponseShape("missing contents.translated")},
		{name: "invalid argument", err: errors.InvalidArgument("tone is required")},
		{name: "plain error", err: fmt.Errorf("connection reset by peer")},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.speciesClient.EXPECT().GetSpecies(s.ctx, "mewtwo").Return(s.mewtwo, nil)
			s.toneClient.EXPECT().Translate(s.ctx, s.mewtwo.Description, entities.ToneYoda).Return("", tc.err)

			output, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{
				Name:      "mewtwo",
				Translate: true,
			})
			s.Require().NoError(err)
			s.Assert().Equal(s.mewtwo, output.Species)
			s.Assert().False(output.Translated)
			s.Assert().Equal(entities.ToneYoda, output.Tone)
		})
	}

	warnings := s.logs.FilterMessage("Translation failed, serving original description").All()
	s.Assert().Len(warnings, len(testCases))
	for _, entry := range warnings {
		s.Assert().Equal(zapcore.WarnLevel, entry.Level)
	}
}

func (s *OrchestratorTestSuite) TestGetSpeciesNotFound() {
	s.speciesClient.EXPECT().GetSpecies(s.ctx, "missingno").
		Return(nil, errors.NotFoundf("species %q not found", "missingno"))

	_, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{Name: "missingno", Translate: true})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal("Unable to find 'missingno'", errors.GetMessage(err))
}

func (s *OrchestratorTestSuite) TestGetSpeciesNotFoundEchoesRequestedName() {
	s.speciesClient.EXPECT().GetSpecies(s.ctx, "missingno").
		Return(nil, errors.NotFoundf("species %q not found", "missingno"))

	_, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{Name: " missingno "})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal("Unable to find ' missingno '", errors.GetMessage(err))
}

func (s *OrchestratorTestSuite) TestGetSpeciesCanceledLookup() {
	s.speciesClient.EXPECT().GetSpecies(s.ctx, "ditto").
		Return(nil, errors.WrapWithCode(context.Canceled, errors.CodeCanceled, "species request canceled"))

	_, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{Name: "ditto", Translate: true})
	s.Require().Error(err)
	s.Assert().True(errors.IsInternal(err))
	s.Assert().Equal("Internal server error", errors.GetMessage(err))
	s.Assert().Zero(s.logs.FilterMessage("Species lookup failed").Len())
	s.Assert().Equal(1, s.logs.FilterMessage("Species lookup canceled").Len())
}

func (s *OrchestratorTestSuite) TestGetSpeciesLookupFailuresAreInternal() {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "unavailable", err: errors.Unavailable("species lookup returned 503")},
		{name: "malformed", err: errors.MalformedUpstreamData("species payload is not valid JSON")},
		{
			name: "missing english",
			err: errors.MissingLocalizedText("no \"en\" flavor text among 1 entries").
				WithMeta("languages", []string{"de"}),
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.speciesClient.EXPECT().GetSpecies(s.ctx, "kleinstein").Return(nil, tc.err)

			_, err := s.orchestrator.GetSpecies(s.ctx, &species.GetSpeciesInput{Name: "kleinstein", Translate: true})
			s.Require().Error(err)
			s.Assert().True(errors.IsInternal(err))
			s.Assert().Equal("Internal server error", errors.GetMessage(err))
			s.Assert().ErrorIs(err, tc.err)
		})
	}

	failures := s.logs.FilterMessage("Species lookup failed").All()
	s.Require().Len(failures, len(testCases))
	s.Assert().Equal("MISSING_LOCALIZED_TEXT", failures[2].ContextMap()["code"])
}

func (s *OrchestratorTestSuite) TestGetSpeciesIsIdempotent() {
	s.speciesClient.EXPECT().GetSpecies(s.ctx, "diglett").Return(s.diglett, nil).Times(2)
	s.toneClient.EXPECT().Translate(s.ctx, s.diglett.Description, entities.ToneYoda).
		Return(testutils.DiglettAsYoda, nil).Times(2)

	input := &species.GetSpeciesInput{Name: "diglett", Translate: true}
	first, err := s.orchestrator.GetSpecies(s.ctx, input)
	s.Require().NoError(err)
	second, err := s.orchestrator.GetSpecies(s.ctx, input)
	s.Require().NoError(err)

	s.Assert().Equal(first, second)
}
