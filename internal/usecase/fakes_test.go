package usecase

import (
	"context"
	"io"
	"sort"
	"sync"

	"health-booking-api/internal/domain/entity"
	"health-booking-api/internal/domain/event"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// In-memory stores standing in for the gorm-backed repositories.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.UserID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindDoctors(ctx context.Context) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var doctors []entity.User
	for _, user := range r.users {
		if user.IsDoctor() {
			doctors = append(doctors, *user)
		}
	}
	return doctors, nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[string]*entity.Appointment{}}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *appointment
	r.appointments[appointment.AppointmentID] = &copied
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, appointmentID string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[appointmentID]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.Create(ctx, appointment)
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, appointmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, appointmentID)
	return nil
}

func (r *fakeAppointmentRepo) ExistsByDoctorAndSlot(ctx context.Context, doctorID, slotISO string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appointment := range r.appointments {
		if appointment.DoctorID == doctorID && appointment.SlotISO == slotISO {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(ctx context.Context, doctorID, sinceSlot string) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.DoctorID != doctorID {
			continue
		}
		if sinceSlot != "" && appointment.SlotISO < sinceSlot {
			continue
		}
		result = append(result, *appointment)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotISO < result[j].SlotISO })
	return result, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(ctx context.Context, patientID string) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.PatientID == patientID {
			result = append(result, *appointment)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotISO < result[j].SlotISO })
	return result, nil
}

type fakeHealthIndexRepo struct {
	mu      sync.Mutex
	records map[string]map[string]*entity.HealthIndexRecord
}

func newFakeHealthIndexRepo() *fakeHealthIndexRepo {
	return &fakeHealthIndexRepo{records: map[string]map[string]*entity.HealthIndexRecord{}}
}

func (r *fakeHealthIndexRepo) Put(ctx context.Context, record *entity.HealthIndexRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byRecord, ok := r.records[record.PatientID]
	if !ok {
		byRecord = map[string]*entity.HealthIndexRecord{}
		r.records[record.PatientID] = byRecord
	}
	copied := *record
	byRecord[record.RecordID] = &copied
	return nil
}

func (r *fakeHealthIndexRepo) Find(ctx context.Context, patientID, recordID string) (*entity.HealthIndexRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[patientID][recordID]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (r *fakeHealthIndexRepo) FindByPatientID(ctx context.Context, patientID string) ([]entity.HealthIndexRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []entity.HealthIndexRecord
	for _, record := range r.records[patientID] {
		result = append(result, *record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.Before(result[j].UpdatedAt) })
	return result, nil
}

func (r *fakeHealthIndexRepo) Delete(ctx context.Context, patientID, recordID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records[patientID], recordID)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []event.AppointmentEvent
}

func (p *fakePublisher) Publish(ctx context.Context, ev event.AppointmentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) byType(t event.Type) []event.AppointmentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []event.AppointmentEvent
	for _, ev := range p.events {
		if ev.EventType == t {
			matched = append(matched, ev)
		}
	}
	return matched
}

type fakeGroupAssigner struct {
	mu      sync.Mutex
	members map[entity.Role][]string
}

func newFakeGroupAssigner() *fakeGroupAssigner {
	return &fakeGroupAssigner{members: map[entity.Role][]string{}}
}

func (g *fakeGroupAssigner) AddToGroup(ctx context.Context, role entity.Role, email string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members[role] = append(g.members[role], email)
	return nil
}
