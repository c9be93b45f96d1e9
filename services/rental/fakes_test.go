package rental

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shelfspace/models"

	"github.com/google/uuid"
)

// fakeReservationRepo is an in-memory ReservationRepository with the same
// CAS and cascade semantics as the mongo implementation.
type fakeReservationRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[string]*models.Reservation)}
}

func (f *fakeReservationRepo) clone(r *models.Reservation) *models.Reservation {
	cp := *r
	cp.Items = append([]models.LineItem(nil), r.Items...)
	cp.Commissions = append([]models.Commission(nil), r.Commissions...)
	cp.Clearance.Shipments = append([]models.ReturnShipment(nil), r.Clearance.Shipments...)
	cp.Clearance.Overrides = append([]models.ClearanceOverride(nil), r.Clearance.Overrides...)
	if r.Clearance.Settlement != nil {
		s := *r.Clearance.Settlement
		cp.Clearance.Settlement = &s
	}
	if r.AdminReview != nil {
		ar := *r.AdminReview
		cp.AdminReview = &ar
	}
	return &cp
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Clearance.Status == "" {
		r.Clearance.Status = models.ClearanceNotStarted
	}
	f.byID[r.ID] = f.clone(r)
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("reservation %s not found", id)
	}
	return f.clone(r), nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[r.ID]; !ok {
		return fmt.Errorf("reservation %s not found", r.ID)
	}
	r.UpdatedAt = time.Now()
	f.byID[r.ID] = f.clone(r)
	return nil
}

func statusIn(status string, set []string) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func (f *fakeReservationRepo) applyExtra(r *models.Reservation, extra map[string]interface{}) {
	for k, v := range extra {
		switch k {
		case "rejectedBy":
			r.RejectedBy, _ = v.(string)
		case "rejectReason":
			r.RejectReason, _ = v.(string)
		case "amountConfirmed":
			r.AmountConfirmed, _ = v.(float64)
		case "adminReview":
			if ar, ok := v.(*models.AdminReview); ok {
				r.AdminReview = ar
			}
		case "commissions":
			if cs, ok := v.([]models.Commission); ok {
				r.Commissions = cs
			}
		case "clearance.status":
			r.Clearance.Status, _ = v.(string)
		case "clearance.startedAt":
			if t, ok := v.(time.Time); ok {
				r.Clearance.StartedAt = &t
			}
		}
	}
}

func (f *fakeReservationRepo) UpdateStatusIfCurrent(ctx context.Context, id string, from []string, to string, extra map[string]interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return false, fmt.Errorf("reservation %s not found", id)
	}
	if !statusIn(r.Status, from) {
		return false, nil
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	f.applyExtra(r, extra)
	return true, nil
}

func (f *fakeReservationRepo) FindOverlapping(ctx context.Context, shelfID string, start, end int64, excludeID string, statuses []string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.byID {
		if r.ShelfID != shelfID || r.ID == excludeID {
			continue
		}
		if !statusIn(r.Status, statuses) {
			continue
		}
		if r.StartDate < end && start < r.EndDate {
			out = append(out, *f.clone(r))
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByShelfAndStatus(ctx context.Context, shelfID string, statuses []string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.byID {
		if r.ShelfID == shelfID && statusIn(r.Status, statuses) {
			out = append(out, *f.clone(r))
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindPendingByBrandAndShelf(ctx context.Context, brandID, shelfID string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byID {
		if r.BrandID == brandID && r.ShelfID == shelfID &&
			(r.Status == models.StatusPending || r.Status == models.StatusPendingAdminApproval) {
			return f.clone(r), nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindVisibleToStore(ctx context.Context, storeID string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.byID {
		if r.StoreID != storeID {
			continue
		}
		if r.Status == models.StatusPendingAdminApproval || r.RejectedBy == models.RejectedByAdmin {
			continue
		}
		out = append(out, *f.clone(r))
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByBrand(ctx context.Context, brandID string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.byID {
		if r.BrandID == brandID {
			out = append(out, *f.clone(r))
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindStale(ctx context.Context, statuses []string, cutoff time.Time) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.byID {
		if statusIn(r.Status, statuses) && r.UpdatedAt.Before(cutoff) {
			out = append(out, *f.clone(r))
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) TransitionWithCascade(ctx context.Context, id, shelfID string, from []string, to string, extra map[string]interface{}) (bool, []models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return false, nil, fmt.Errorf("reservation %s not found", id)
	}
	if !statusIn(r.Status, from) {
		return false, nil, nil
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	f.applyExtra(r, extra)

	var cascaded []models.Reservation
	for _, rival := range f.byID {
		if rival.ID == id || rival.ShelfID != shelfID {
			continue
		}
		if rival.Status != models.StatusPending {
			continue
		}
		rival.Status = models.StatusRejected
		rival.RejectedBy = models.RejectedBySystem
		rival.RejectReason = "shelf awarded to another request"
		rival.UpdatedAt = time.Now()
		cascaded = append(cascaded, *f.clone(rival))
	}
	return true, cascaded, nil
}

// forceUpdatedAt backdates a reservation for expiry tests.
func (f *fakeReservationRepo) forceUpdatedAt(id string, t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.byID[id]; ok {
		r.UpdatedAt = t
	}
}

// fakeOccupancyRepo is an in-memory OccupancyRepository enforcing the
// one-record-per-reservation and unique-slug constraints.
type fakeOccupancyRepo struct {
	mu   sync.Mutex
	byID map[string]*models.OccupancyRecord
}

func newFakeOccupancyRepo() *fakeOccupancyRepo {
	return &fakeOccupancyRepo{byID: make(map[string]*models.OccupancyRecord)}
}

func (f *fakeOccupancyRepo) Create(ctx context.Context, rec *models.OccupancyRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.ReservationID == rec.ReservationID {
			return fmt.Errorf("occupancy record already exists for reservation %s", rec.ReservationID)
		}
		if existing.Slug == rec.Slug {
			return fmt.Errorf("slug %s already taken", rec.Slug)
		}
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	cp := *rec
	f.byID[rec.ID] = &cp
	return nil
}

func (f *fakeOccupancyRepo) GetByID(ctx context.Context, id string) (*models.OccupancyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("occupancy record %s not found", id)
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeOccupancyRepo) GetByReservationID(ctx context.Context, reservationID string) (*models.OccupancyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.byID {
		if rec.ReservationID == reservationID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOccupancyRepo) GetBySlug(ctx context.Context, slug string) (*models.OccupancyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.byID {
		if rec.Slug == slug {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("occupancy record not found")
}

func (f *fakeOccupancyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.byID {
		if rec.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOccupancyRepo) IncrementCounters(ctx context.Context, id string, views, orders int64, revenue float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("occupancy record %s not found", id)
	}
	rec.Views += views
	rec.Orders += orders
	rec.Revenue += revenue
	rec.UpdatedAt = time.Now()
	return nil
}

func (f *fakeOccupancyRepo) Deactivate(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("occupancy record %s not found", id)
	}
	rec.Active = false
	now := time.Now()
	rec.DeactivatedAt = &now
	return nil
}

// fakeShelfRepo serves a fixed set of shelves.
type fakeShelfRepo struct {
	shelves map[string]*models.Shelf
}

func newFakeShelfRepo(shelves ...*models.Shelf) *fakeShelfRepo {
	m := make(map[string]*models.Shelf)
	for _, s := range shelves {
		m[s.ID] = s
	}
	return &fakeShelfRepo{shelves: m}
}

func (f *fakeShelfRepo) Create(ctx context.Context, s *models.Shelf) error {
	f.shelves[s.ID] = s
	return nil
}

func (f *fakeShelfRepo) GetByID(ctx context.Context, id string) (*models.Shelf, error) {
	s, ok := f.shelves[id]
	if !ok {
		return nil, fmt.Errorf("shelf %s not found", id)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeShelfRepo) GetByStore(ctx context.Context, storeID string) ([]models.Shelf, error) {
	var out []models.Shelf
	for _, s := range f.shelves {
		if s.StoreID == storeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeShelfRepo) Update(ctx context.Context, s *models.Shelf) error {
	f.shelves[s.ID] = s
	return nil
}

// recordingThreads records every thread operation.
type recordingThreads struct {
	mu       sync.Mutex
	posts    []models.ThreadPostIntent
	archived []string
}

func (t *recordingThreads) EnsureThread(ctx context.Context, reservationID, storeID, brandID string) (string, error) {
	return "thread-" + reservationID, nil
}

func (t *recordingThreads) PostSystemNotice(ctx context.Context, threadID, messageType, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.posts = append(t.posts, models.ThreadPostIntent{ThreadID: threadID, MessageType: messageType, Text: text})
	return nil
}

func (t *recordingThreads) Archive(ctx context.Context, threadID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.archived = append(t.archived, threadID)
	return nil
}

// recordingNotifier records dispatched intents.
type recordingNotifier struct {
	mu      sync.Mutex
	intents []models.NotificationIntent
}

func (n *recordingNotifier) Dispatch(ctx context.Context, intent models.NotificationIntent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.intents = append(n.intents, intent)
	return nil
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, i := range n.intents {
		out = append(out, i.Kind)
	}
	return out
}

// testHarness bundles a service with its fakes.
type testHarness struct {
	svc       *DefaultRentalService
	repo      *fakeReservationRepo
	occupancy *fakeOccupancyRepo
	shelves   *fakeShelfRepo
	threads   *recordingThreads
	notifier  *recordingNotifier
}

func newTestHarness(shelves ...*models.Shelf) *testHarness {
	if len(shelves) == 0 {
		shelves = []*models.Shelf{{
			ID:           "shelf-1",
			StoreID:      "store-1",
			StoreName:    "Corner Goods",
			Name:         "Window Shelf A",
			MonthlyPrice: 120,
			Currency:     "USD",
		}}
	}
	h := &testHarness{
		repo:      newFakeReservationRepo(),
		occupancy: newFakeOccupancyRepo(),
		shelves:   newFakeShelfRepo(shelves...),
		threads:   &recordingThreads{},
		notifier:  &recordingNotifier{},
	}
	h.svc = &DefaultRentalService{
		Repo:      h.repo,
		Occupancy: h.occupancy,
		Shelves:   h.shelves,
		Threads:   h.threads,
		Notifier:  h.notifier,
	}
	return h
}

func ms(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

var (
	brandActor      = models.Actor{ProfileID: "brand-1", Role: models.RoleBrandOwner}
	otherBrandActor = models.Actor{ProfileID: "brand-2", Role: models.RoleBrandOwner}
	storeActor      = models.Actor{ProfileID: "store-1", Role: models.RoleStoreOwner}
	adminActor      = models.Actor{ProfileID: "admin-1", Role: models.RoleAdmin}
)

func submitInput(shelfID string, start, end int64) models.SubmitRentalInput {
	return models.SubmitRentalInput{
		ShelfID:   shelfID,
		BrandName: "Acme Snacks",
		StartDate: start,
		EndDate:   end,
		Items: []models.LineItemInput{
			{ProductID: "p1", Name: "Trail Mix", Quantity: 24, UnitPrice: 4.5, Category: "snacks"},
		},
	}
}
