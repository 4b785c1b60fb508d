package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/addisride/admin-console/auth"
	"github.com/addisride/admin-console/credstore"
	"github.com/addisride/admin-console/gateway"
	"github.com/addisride/admin-console/internal/config"
	"github.com/addisride/admin-console/notify"
	"github.com/addisride/admin-console/realtime"
	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running console")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Console stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())
	configureLogging(c)

	store := credstore.NewFileStore(c.GetCredentialsFile(), credstore.WithLogger(log.Logger))

	// The gateway asks the auth manager for the current access token,
	// and the manager drives the gateway's auth endpoints. The closure
	// breaks that cycle.
	var manager *auth.Manager
	api, err := gateway.NewClient(c.GetAPIBaseURL(),
		func() string {
			if manager == nil {
				return ""
			}
			return manager.Token()
		},
		gateway.WithHTTPClient(&http.Client{Timeout: c.GetHTTPTimeout()}),
		gateway.WithLogger(log.Logger))
	if err != nil {
		return err
	}

	manager, err = auth.New(api, store, auth.WithLogger(log.Logger))
	if err != nil {
		return err
	}

	center := notify.NewCenter(notify.WithLogger(log.Logger))
	channel := realtime.NewChannel(c.GetRealtimeURL(), manager.Token, center, realtime.WithLogger(log.Logger))

	// The push channel lives and dies with the session.
	manager.Subscribe(func(state auth.State) {
		switch state {
		case auth.Authenticated:
			channel.Connect()
		case auth.Unauthenticated:
			channel.Close()
		}
	})

	if err := ensureSession(manager, c); err != nil {
		return err
	}
	if manager.State() == auth.Authenticated {
		channel.Connect()
	}

	waitForStopSignal()
	channel.Close()
	return nil
}

// ensureSession logs in with env credentials when no stored session was
// hydrated. Without credentials the console starts signed out.
func ensureSession(manager *auth.Manager, c config.Config) error {
	if manager.State() == auth.Authenticated {
		log.Info().Msg("Resumed stored session")
		return nil
	}
	email, password := c.GetAdminEmail(), c.GetAdminPassword()
	if email == "" || password == "" {
		log.Warn().Msg("No stored session and no credentials configured")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.GetHTTPTimeout())
	defer cancel()
	ok, err := manager.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("manager.Login: %w", err)
	}
	if !ok {
		log.Warn().Str("email", email).Msg("Login rejected")
	}
	return nil
}

func configureLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
