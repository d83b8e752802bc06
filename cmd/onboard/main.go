package main

import (
	"log"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/wealthpath/onboard/adapters/notify"
	"github.com/wealthpath/onboard/adapters/store"
	"github.com/wealthpath/onboard/adapters/tokenizer"
	"github.com/wealthpath/onboard/internal/config"
	"github.com/wealthpath/onboard/service"
	transport "github.com/wealthpath/onboard/transport/http"
)

func main() {
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)

	// Welcome emails go out through a Redis stream; the mailer worker
	// consumes them on the other side.
	logger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	codec := tokenizer.NewJWTTokenizer(cfg.Tokens)
	documents := store.NewRedisStore(redisClient)
	notifier := notify.NewWatermillNotifier(publisher)

	authService := service.NewAuthService(documents, codec, notifier)
	profileService := service.NewProfileService(documents)

	cookies := transport.NewCookieOptions(
		cfg.Cookies.Domain,
		cfg.Cookies.Secure,
		int(cfg.Tokens.RefreshTTL.Seconds()),
	)

	router := transport.SetupRouter(authService, profileService, codec, cookies)

	if err := router.Run(cfg.HTTPServer.Address); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
