package services

import (
	"context"
	"os"
	"sync"
	"testing"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
	"seslidavet.link/pkg/queryparams"
	"seslidavet.link/pkg/vapi"
	"seslidavet.link/repositories"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	code := m.Run()
	configslog.SyncLogger()
	os.Exit(code)
}

// Bellek içi repository sahteleri. Servis testleri veritabanı olmadan,
// yalnızca arayüzler üzerinden çalışır.

type fakeEventRepo struct {
	mu     sync.Mutex
	nextID uint
	events map[uint]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1, events: make(map[uint]*models.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	r.nextID++
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindByIDWithGuests(ctx context.Context, id uint) (*models.Event, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeEventRepo) UpdateStatus(_ context.Context, id uint, status models.EventStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return repositories.ErrNotFound
	}
	event.Status = status
	return nil
}

func (r *fakeEventRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			event.Status = value.(models.EventStatus)
		case "voice_choice":
			event.VoiceChoice = value.(string)
		case "voice_sample_id":
			event.VoiceSampleID = value.(string)
		case "final_invitation_script":
			event.FinalInvitationScript = value.(string)
		case "guest_list_csv_path":
			event.GuestListCSVPath = value.(string)
		}
	}
	return nil
}

func (r *fakeEventRepo) FindAllByEmailPaginated(_ context.Context, email string, params queryparams.ListParams) ([]models.Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []models.Event
	for _, event := range r.events {
		if event.UserEmail == email {
			events = append(events, *event)
		}
	}
	return events, int64(len(events)), nil
}

// setGuests etkinliğe davetlileri iliştirir; FindByIDWithGuests bunları döndürür.
func (r *fakeEventRepo) setGuests(id uint, guests []models.Guest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event, ok := r.events[id]; ok {
		event.Guests = guests
	}
}

type fakeGuestRepo struct {
	mu     sync.Mutex
	nextID uint
	guests map[uint]*models.Guest
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{nextID: 1, guests: make(map[uint]*models.Guest)}
}

func (r *fakeGuestRepo) AddBatch(_ context.Context, eventID uint, guests []models.Guest) ([]models.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := make([]models.Guest, 0, len(guests))
	for _, guest := range guests {
		guest.ID = r.nextID
		r.nextID++
		guest.EventID = eventID
		if guest.CallStatus == "" {
			guest.CallStatus = models.CallStatusNotCalled
		}
		copied := guest
		r.guests[guest.ID] = &copied
		created = append(created, guest)
	}
	return created, nil
}

func (r *fakeGuestRepo) FindByID(_ context.Context, id uint) (*models.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	guest, ok := r.guests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *guest
	return &copied, nil
}

func (r *fakeGuestRepo) FindAllByEventID(_ context.Context, eventID uint) ([]models.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var guests []models.Guest
	for _, guest := range r.guests {
		if guest.EventID == eventID {
			guests = append(guests, *guest)
		}
	}
	return guests, nil
}

func (r *fakeGuestRepo) UpdateCallStatus(_ context.Context, id uint, status models.CallStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	guest, ok := r.guests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	guest.CallStatus = status
	return nil
}

func (r *fakeGuestRepo) CountByEventID(_ context.Context, eventID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, guest := range r.guests {
		if guest.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *fakeGuestRepo) status(id uint) models.CallStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if guest, ok := r.guests[id]; ok {
		return guest.CallStatus
	}
	return ""
}

type fakeRSVPRepo struct {
	mu     sync.Mutex
	nextID uint
	rsvps  []models.RSVP
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{nextID: 1}
}

func (r *fakeRSVPRepo) Create(_ context.Context, rsvp *models.RSVP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rsvp.ID = r.nextID
	r.nextID++
	r.rsvps = append(r.rsvps, *rsvp)
	return nil
}

func (r *fakeRSVPRepo) FindAllByEventID(_ context.Context, eventID uint) ([]models.RSVP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rsvps []models.RSVP
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID {
			rsvps = append(rsvps, rsvp)
		}
	}
	return rsvps, nil
}

func (r *fakeRSVPRepo) CountsByResponse(_ context.Context, eventID uint) (map[models.RSVPResponse]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.RSVPResponse]int64)
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID {
			counts[rsvp.Response]++
		}
	}
	return counts, nil
}

func (r *fakeRSVPRepo) all() []models.RSVP {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.RSVP(nil), r.rsvps...)
}

// fakeCallClient sağlayıcı isteklerini kaydeder ve ayarlanabilir yanıt döndürür.
type fakeCallClient struct {
	mu       sync.Mutex
	requests []*vapi.CallRequest
	respond  func(req *vapi.CallRequest) (*vapi.CallResponse, error)
}

func newFakeCallClient() *fakeCallClient {
	return &fakeCallClient{
		respond: func(req *vapi.CallRequest) (*vapi.CallResponse, error) {
			results := make([]vapi.CallResult, len(req.Customers))
			for i := range results {
				results[i] = vapi.CallResult{ID: "call-ok"}
			}
			return &vapi.CallResponse{Results: results}, nil
		},
	}
}

func (c *fakeCallClient) CreateCall(_ context.Context, req *vapi.CallRequest) (*vapi.CallResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	return c.respond(req)
}

func (c *fakeCallClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

var (
	_ repositories.IEventRepository = (*fakeEventRepo)(nil)
	_ repositories.IGuestRepository = (*fakeGuestRepo)(nil)
	_ repositories.IRSVPRepository  = (*fakeRSVPRepo)(nil)
	_ ICallClient                   = (*fakeCallClient)(nil)
)
