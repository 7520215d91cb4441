package main

import (
	bookingHandler "contour/internal/bookings/handler"
	"contour/internal/bookings/repository"
	bookingService "contour/internal/bookings/service"
	bookingValidator "contour/internal/bookings/validator"
	inquiryHandler "contour/internal/inquiries/handler"
	inquiryService "contour/internal/inquiries/service"
	inquiryValidator "contour/internal/inquiries/validator"
	"contour/pkg/app"
	"contour/pkg/client"
	"contour/pkg/config"
	"contour/pkg/events"
	"contour/pkg/kafka"
	kafka_config "contour/pkg/kafka/config"
	kafka_middleware "contour/pkg/kafka/middleware"
	"contour/pkg/metrics"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()
	cfg.SetStores()

	cfg.Log.Info("Starting Bookings service")
	m := metrics.New("contour")
	api := client.NewClinicAPI(cfg.ClinicAPIURL, cfg.ClinicAPITimeout).WithToken(cfg.ClinicAPIToken)
	publisher := initPublisher(cfg, m)

	bookings, inquiries := initServices(cfg, api, publisher, m)

	serverApp := app.NewApplication(cfg, m)
	serverApp.OnShutdown(publisher.Close)
	serverApp.SetApp(
		map[string]app.Pinger{
			"clinic_api": api,
			"stores":     cfg.Client,
		},
		bookingHandler.NewBookingHandler(bookings, cfg.Log),
		inquiryHandler.NewInquiryHandler(inquiries, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config, m *metrics.Metrics) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, events will be dropped")
		return events.NewNopPublisher(cfg.Log)
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	}

	cfg.Log.Info("Kafka publisher initialized", "brokers", kafkaCfg.Brokers, "topic_prefix", kafkaCfg.TopicPrefix)
	return events.NewKafkaPublisher(producer, kafkaCfg, cfg.Log)
}

func initServices(
	cfg *config.Config,
	api *client.ClinicAPI,
	publisher events.Publisher,
	m *metrics.Metrics,
) (bookingService.BookingService, inquiryService.InquiryService) {
	var drafts repository.DraftRepository
	switch cfg.DraftStore {
	case config.StoreRedis:
		drafts = repository.NewRedisDraftRepository(cfg.Client.Redis, cfg.DraftTTL)
	default:
		drafts = repository.NewMemoryDraftRepository(cfg.DraftTTL)
	}

	var submissions repository.SubmissionRepository
	switch cfg.SubmissionLedger {
	case config.StoreMongo:
		submissions = repository.NewMongoSubmissionRepository(cfg)
	default:
		submissions = repository.NewMemorySubmissionRepository(cfg.SubmissionTTL)
	}

	bookings := bookingService.NewBookingService(
		drafts,
		submissions,
		api.Bookings,
		publisher,
		bookingValidator.NewBookingValidator(cfg.Log),
		m,
		cfg,
	)

	inquiries := inquiryService.NewInquiryService(
		api.Contact,
		api.Subscribers,
		publisher,
		inquiryValidator.NewInquiryValidator(cfg.Log),
		m,
		cfg,
	)

	cfg.Log.Info("Services initialized",
		"draft_store", cfg.DraftStore,
		"submission_ledger", cfg.SubmissionLedger,
	)
	return bookings, inquiries
}
