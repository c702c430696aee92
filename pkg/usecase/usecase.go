package usecase

import (
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/service/narrative"
	"github.com/wanderstone-dev/wanderstone/pkg/service/webtoken"
)

type UseCases struct {
	repo       interfaces.Repository
	extractor  interfaces.Extractor
	geocoder   interfaces.Geocoder
	renderer   interfaces.MapRenderer
	images     interfaces.ImageStore
	narrative  narrative.Service
	tokens     *webtoken.Service
	mapBaseURL string
	threshold  float64

	Resolve *ResolveUseCase
	Intake  *IntakeUseCase
	Stone   *StoneUseCase
	Pref    *PrefUseCase
	Chat    *ChatUseCase
}

type Option func(*UseCases)

// WithGeocoder enables location resolution during intake
func WithGeocoder(geocoder interfaces.Geocoder) Option {
	return func(uc *UseCases) {
		uc.geocoder = geocoder
	}
}

// WithMapRenderer enables journey map images
func WithMapRenderer(renderer interfaces.MapRenderer) Option {
	return func(uc *UseCases) {
		uc.renderer = renderer
	}
}

// WithImageStore enables crop and thumbnail persistence
func WithImageStore(images interfaces.ImageStore) Option {
	return func(uc *UseCases) {
		uc.images = images
	}
}

// WithNarrative enables the LLM journey narrative
func WithNarrative(svc narrative.Service) Option {
	return func(uc *UseCases) {
		uc.narrative = svc
	}
}

// WithWebMap enables interactive map links: tokens are minted by svc
// and resolve against baseURL
func WithWebMap(svc *webtoken.Service, baseURL string) Option {
	return func(uc *UseCases) {
		uc.tokens = svc
		uc.mapBaseURL = baseURL
	}
}

// WithSimilarityThreshold overrides the match decision boundary
func WithSimilarityThreshold(threshold float64) Option {
	return func(uc *UseCases) {
		uc.threshold = threshold
	}
}

func New(repo interfaces.Repository, extractor interfaces.Extractor, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		extractor: extractor,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Resolve = NewResolveUseCase(repo, uc.threshold)
	uc.Pref = NewPrefUseCase(repo)
	uc.Intake = NewIntakeUseCase(uc)
	uc.Stone = NewStoneUseCase(uc)
	uc.Chat = NewChatUseCase(uc)

	return uc
}
