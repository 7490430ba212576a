//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/ahmadmousily/FAQ-Question/internal/bootstrap"
	"github.com/ahmadmousily/FAQ-Question/internal/domain/faq"
	"github.com/ahmadmousily/FAQ-Question/internal/infra/config"
	httpiface "github.com/ahmadmousily/FAQ-Question/internal/interface/http"
	"github.com/ahmadmousily/FAQ-Question/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideSearchConfig,
		provideEncoder,
		provideIndex,
		provideResultCache,
		provideEntries,
		faq.NewBuilder,
		faq.NewResolver,
		wire.Bind(new(httpiface.Resolver), new(*faq.Resolver)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
