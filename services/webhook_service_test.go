package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seslidavet.link/models"
)

func newWebhookFixture(t *testing.T) (*fakeGuestRepo, *fakeRSVPRepo, IWebhookService, models.Guest) {
	t.Helper()
	guestRepo := newFakeGuestRepo()
	rsvpRepo := newFakeRSVPRepo()
	service := NewWebhookService(guestRepo, rsvpRepo)

	created, err := guestRepo.AddBatch(context.Background(), 7, []models.Guest{
		{GuestName: "Liam", PhoneNumber: "+15550001111", CallStatus: models.CallStatusInitiated},
	})
	require.NoError(t, err)
	return guestRepo, rsvpRepo, service, created[0]
}

func callbackFor(guest models.Guest, status, transcription string) *CallbackPayload {
	return &CallbackPayload{
		Status: status,
		Metadata: CorrelationMeta{
			GuestID: strconv.FormatUint(uint64(guest.ID), 10),
			EventID: strconv.FormatUint(uint64(guest.EventID), 10),
		},
		Transcription: transcription,
	}
}

func TestProcessCallback_Transcriptions(t *testing.T) {
	tests := []struct {
		name          string
		transcription string
		want          models.RSVPResponse
	}{
		{"açık evet", "Yes, I will definitely be there!", models.RSVPYes},
		{"küçük harf evet", "yes of course", models.RSVPYes},
		{"hayır", "Sorry, I can't make it. It's a no from me.", models.RSVPNo},
		{"kararsız", "Hmm, maybe, I'll check my calendar", models.RSVPMaybe},
		{"alakasız metin", "What a lovely day for a picnic", models.RSVPNoResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guestRepo, rsvpRepo, service, guest := newWebhookFixture(t)

			err := service.ProcessCallback(context.Background(), callbackFor(guest, "ended", tt.transcription))
			require.NoError(t, err)

			rsvps := rsvpRepo.all()
			require.Len(t, rsvps, 1)
			assert.Equal(t, tt.want, rsvps[0].Response)
			assert.Equal(t, guest.ID, rsvps[0].GuestID)
			assert.Equal(t, models.CallStatusRSVPReceived, guestRepo.status(guest.ID))
		})
	}
}

func TestProcessCallback_NoTranscription(t *testing.T) {
	guestRepo, rsvpRepo, service, guest := newWebhookFixture(t)

	err := service.ProcessCallback(context.Background(), callbackFor(guest, "ended", ""))
	require.NoError(t, err)

	rsvps := rsvpRepo.all()
	require.Len(t, rsvps, 1)
	assert.Equal(t, models.RSVPNoResponse, rsvps[0].Response)
	assert.Equal(t, "Call ended, no transcription received.", rsvps[0].Summary)
	assert.Equal(t, models.CallStatusNoResponse, guestRepo.status(guest.ID))
}

func TestProcessCallback_Failed(t *testing.T) {
	guestRepo, rsvpRepo, service, guest := newWebhookFixture(t)

	payload := callbackFor(guest, "failed", "")
	payload.ErrorMessage = "number unreachable"
	err := service.ProcessCallback(context.Background(), payload)
	require.NoError(t, err)

	rsvps := rsvpRepo.all()
	require.Len(t, rsvps, 1)
	assert.Equal(t, models.RSVPCallFailed, rsvps[0].Response)
	assert.Equal(t, "number unreachable", rsvps[0].Summary)
	assert.Equal(t, models.CallStatusAPIError, guestRepo.status(guest.ID))
}

func TestProcessCallback_BadCorrelation(t *testing.T) {
	_, rsvpRepo, service, _ := newWebhookFixture(t)

	tests := []struct {
		name string
		meta CorrelationMeta
	}{
		{"boş guestId", CorrelationMeta{GuestID: "", EventID: "7"}},
		{"sayı olmayan guestId", CorrelationMeta{GuestID: "abc", EventID: "7"}},
		{"boş eventId", CorrelationMeta{GuestID: "1", EventID: ""}},
		{"sıfır guestId", CorrelationMeta{GuestID: "0", EventID: "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ProcessCallback(context.Background(), &CallbackPayload{
				Status:   "ended",
				Metadata: tt.meta,
			})
			assert.ErrorIs(t, err, ErrBadCorrelation)
		})
	}
	assert.Empty(t, rsvpRepo.all(), "geçersiz korelasyon RSVP satırı oluşturmamalı")
}

func envelopeMessage(msgType, status string) *WebhookMessage {
	return &WebhookMessage{
		Type:   msgType,
		Status: status,
		Call:   &WebhookCall{Metadata: CorrelationMeta{GuestID: "1", EventID: "7"}},
	}
}

func TestProcessEnvelope_StatusUpdateFailed(t *testing.T) {
	guestRepo, _, service, guest := newWebhookFixture(t)

	err := service.ProcessEnvelope(context.Background(), envelopeMessage("status-update", "failed"))
	require.NoError(t, err)
	assert.Equal(t, models.CallStatusProviderFailed, guestRepo.status(guest.ID))
}

func TestProcessEnvelope_StatusUpdateDoesNotDowngradeRSVP(t *testing.T) {
	guestRepo, _, service, guest := newWebhookFixture(t)
	require.NoError(t, guestRepo.UpdateCallStatus(context.Background(), guest.ID, models.CallStatusRSVPReceived))

	// RSVP alınmış davetli geç gelen başarısızlık bildirimiyle geri düşmez.
	err := service.ProcessEnvelope(context.Background(), envelopeMessage("status-update", "failed"))
	require.NoError(t, err)
	assert.Equal(t, models.CallStatusRSVPReceived, guestRepo.status(guest.ID))
}

func TestProcessEnvelope_StatusUpdateNonFailedIgnored(t *testing.T) {
	guestRepo, _, service, guest := newWebhookFixture(t)

	err := service.ProcessEnvelope(context.Background(), envelopeMessage("status-update", "in-progress"))
	require.NoError(t, err)
	assert.Equal(t, models.CallStatusInitiated, guestRepo.status(guest.ID))
}

func TestProcessEnvelope_StatusUpdateUnknownGuest(t *testing.T) {
	_, _, service, _ := newWebhookFixture(t)

	message := envelopeMessage("status-update", "failed")
	message.Call.Metadata.GuestID = "999"

	// Bilinmeyen davetli için gelen bildirim hata üretmez, yok sayılır.
	err := service.ProcessEnvelope(context.Background(), message)
	assert.NoError(t, err)
}

func TestProcessEnvelope_EndOfCallReport(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.RSVPResponse
	}{
		{"evet", "yes", models.RSVPYes},
		{"büyük harf evet", "YES", models.RSVPYes},
		{"karışık hayır", "No", models.RSVPNo},
		{"kararsız", "maybe", models.RSVPMaybe},
		{"boş", "", models.RSVPNoResponse},
		{"tanınmayan", "definitely attending", models.RSVPNoResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guestRepo, rsvpRepo, service, guest := newWebhookFixture(t)

			message := envelopeMessage("end-of-call-report", "")
			message.Analysis = &WebhookAnalysis{
				Summary: "Guest was friendly.",
				StructuredData: &StructuredData{
					RSVPResponse:        tt.raw,
					SpecialRequest:      "vegan menu",
					ReminderCallDetails: "call 2 days before",
				},
			}

			err := service.ProcessEnvelope(context.Background(), message)
			require.NoError(t, err)

			rsvps := rsvpRepo.all()
			require.Len(t, rsvps, 1)
			assert.Equal(t, tt.want, rsvps[0].Response)
			assert.Equal(t, "Guest was friendly.", rsvps[0].Summary)
			assert.Equal(t, "vegan menu", rsvps[0].SpecialRequest)
			assert.Equal(t, "call 2 days before", rsvps[0].ReminderRequest)
			assert.Equal(t, models.CallStatusRSVPReceived, guestRepo.status(guest.ID))
		})
	}
}

func TestProcessEnvelope_UnknownTypeIgnored(t *testing.T) {
	_, rsvpRepo, service, _ := newWebhookFixture(t)

	err := service.ProcessEnvelope(context.Background(), envelopeMessage("transcript", ""))
	require.NoError(t, err)
	assert.Empty(t, rsvpRepo.all())
}

func TestProcessEnvelope_NilMessage(t *testing.T) {
	_, _, service, _ := newWebhookFixture(t)
	assert.NoError(t, service.ProcessEnvelope(context.Background(), nil))
}

func TestProcessEnvelope_DuplicateReportsAppend(t *testing.T) {
	_, rsvpRepo, service, _ := newWebhookFixture(t)

	message := envelopeMessage("end-of-call-report", "")
	message.Analysis = &WebhookAnalysis{StructuredData: &StructuredData{RSVPResponse: "yes"}}

	require.NoError(t, service.ProcessEnvelope(context.Background(), message))
	require.NoError(t, service.ProcessEnvelope(context.Background(), message))

	// Tekilleştirme yapılmaz; her rapor yeni satırdır.
	assert.Len(t, rsvpRepo.all(), 2)
}
