package service_test

import (
	"access-request-server/config"
	"access-request-server/internal/model"
	"access-request-server/internal/notifier"
	"access-request-server/internal/security"
	"access-request-server/internal/service"
	"access-request-server/internal/signals"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    int64 = 10
	recordID   int64 = 1
	ownerEmail       = "r@x"
	senderMail       = "j@y"
)

var confirmTokenPattern = regexp.MustCompile(`/access-requests/confirm/([A-Za-z0-9_-]+)`)

type harness struct {
	requests    *fakeAccessRequestRepository
	links       *fakeSecretLinkRepository
	mailer      *MockMailer
	records     *MockRecordResolver
	users       *MockUserDirectory
	bus         *signals.Bus
	tokens      *security.TokenFactory
	emailTokens *security.EmailConfirmationSerializer
	linkService *service.SecretLinkService
	service     *service.AccessRequestService
	authorizer  *service.Authorizer
	signals     []signals.Name
	now         time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		requests: newFakeAccessRequestRepository(),
		links:    newFakeSecretLinkRepository(),
		mailer:   &MockMailer{},
		records:  &MockRecordResolver{},
		users:    &MockUserDirectory{},
		bus:      signals.NewBus(),
		now:      time.Now().UTC().Truncate(time.Second),
	}
	clock := func() time.Time { return h.now }

	secrets := security.StaticSecrets("service-test-secret")
	var err error
	h.tokens, err = security.NewTokenFactory(secrets, security.WithClock(clock))
	require.NoError(t, err)
	h.emailTokens, err = security.NewEmailConfirmationSerializer(secrets, 120*time.Hour, security.WithClock(clock))
	require.NoError(t, err)

	templates, err := notifier.NewTemplates()
	require.NoError(t, err)
	urls, err := notifier.NewURLBuilder(&config.SiteConfig{BaseURL: "https://zenodo.example"})
	require.NoError(t, err)

	h.linkService = service.NewSecretLinkService(h.links, fakeDB, h.tokens, h.bus, urls)
	h.linkService.SetClock(clock)
	h.service = service.NewAccessRequestService(h.requests, fakeDB, h.linkService, h.records, h.emailTokens, h.bus)
	h.service.SetClock(clock)
	h.authorizer = service.NewAuthorizer(h.linkService)

	for _, name := range []signals.Name{signals.RequestCreated, signals.RequestConfirmed, signals.RequestAccepted,
		signals.RequestRejected, signals.LinkCreated, signals.LinkRevoked} {
		h.bus.Connect(name, "recorder", func(ctx context.Context, event signals.Event) error {
			h.signals = append(h.signals, event.Name)
			return nil
		})
	}

	service.NewReceivers(service.ReceiversDeps{
		Mailer:       h.mailer,
		Templates:    templates,
		URLs:         urls,
		Records:      h.records,
		Users:        h.users,
		EmailTokens:  h.emailTokens,
		Issuer:       h.service,
		Links:        h.linkService,
		LinkEndpoint: "/records/{resource_id}",
	}).Register(h.bus)

	h.records.On("GetRecord", mock.Anything, recordID).
		Return(&model.Record{ID: recordID, OwnerUserID: ownerID, Title: "Doc", AccessRight: "restricted"}, nil).Maybe()
	h.users.On("FindByID", mock.Anything, ownerID).Return(&model.User{ID: ownerID, Email: ownerEmail}, nil).Maybe()

	return h
}

func (h *harness) mailOK() {
	h.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)
}

func (h *harness) anonymousParams() model.NewAccessRequestParams {
	return model.NewAccessRequestParams{
		ResourceID:     recordID,
		ReceiverUserID: ownerID,
		SenderFullName: "Jane Doe",
		SenderEmail:    senderMail,
		Justification:  "please",
	}
}

// pending : заявка от подтверждённого пользователя, сразу в pending
func (h *harness) pending(t *testing.T) *model.AccessRequest {
	t.Helper()
	confirmed := h.now.Add(-time.Hour)
	params := h.anonymousParams()
	params.Sender = &model.User{ID: 5, Email: senderMail, ConfirmedAt: &confirmed}

	request, err := h.service.Create(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, request.Status)
	return request
}

func (h *harness) resetSignals() {
	h.signals = nil
}
