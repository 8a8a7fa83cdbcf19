package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/GlebRadaev/affiliate/internal/cache"
	"github.com/GlebRadaev/affiliate/internal/config"
	"github.com/GlebRadaev/affiliate/internal/notify"
	"github.com/stretchr/testify/suite"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
	s.app.cfg = &config.Config{}
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestWait_NoErrors() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.NoError(s.app.Wait(ctx, cancel))
}

func (s *ApplicationSuite) TestNewNotifier_DisabledWithoutToken() {
	s.IsType(notify.Noop{}, s.app.newNotifier())
}

func (s *ApplicationSuite) TestNewEventCache_DisabledWithoutAddress() {
	s.IsType(cache.Noop{}, s.app.newEventCache(context.Background()))
}

func (s *ApplicationSuite) TestNewEventCache_UnreachableRedis() {
	s.app.cfg.RedisAddr = "127.0.0.1:1"

	s.IsType(cache.Noop{}, s.app.newEventCache(context.Background()))
}
