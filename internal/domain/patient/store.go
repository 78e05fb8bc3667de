package patient

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hms/hms/internal/platform/state"
	"github.com/hms/hms/pkg/wire"
)

const (
	recentChatLimit = 5
	upcomingLimit   = 3
)

// ErrChatNotFound is returned by SelectChat for an id that is not loaded.
var ErrChatNotFound = errors.New("chat not found")

// Snapshot is a copy of the store state plus the views derived from it.
type Snapshot struct {
	UserID               string        `json:"user_id"`
	Chats                []Chat        `json:"chats"`
	Appointments         []Appointment `json:"appointments"`
	SelectedChat         *Chat         `json:"selected_chat"`
	RecentChats          []Chat        `json:"recent_chats"`
	UpcomingAppointments []Appointment `json:"upcoming_appointments"`
	Loading              bool          `json:"loading"`
	Error                string        `json:"error,omitempty"`
}

// Store is the in-memory state of one patient session. All mutation goes
// through its actions. Results are merged in the order calls complete.
type Store struct {
	*state.Envelope

	svc    *Service
	userID string
	now    func() time.Time

	mu           sync.RWMutex
	chats        []Chat
	appointments []Appointment
	selectedID   string
}

func NewStore(svc *Service, userID string) *Store {
	return &Store{
		Envelope: state.NewEnvelope(svc.logger.With().Str("store", "patient").Str("user_id", userID).Logger()),
		svc:      svc,
		userID:   userID,
		now:      time.Now,
	}
}

// -- Actions --

// LoadData replaces chats and appointments with a fresh copy from the backend.
func (s *Store) LoadData(ctx context.Context) error {
	return s.Run(ctx, "load_data", func(ctx context.Context) error {
		chats, err := s.svc.ListChats(ctx, s.userID)
		if err != nil {
			return err
		}
		appts, err := s.svc.ListAppointments(ctx, s.userID)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.chats = chats
		s.appointments = appts
		if s.selectedID != "" && indexOfChat(s.chats, s.selectedID) < 0 {
			s.selectedID = ""
		}
		s.mu.Unlock()
		return nil
	})
}

func (s *Store) RefreshData(ctx context.Context) error {
	return s.LoadData(ctx)
}

// CreateNewChat prepends the created chat and selects it.
func (s *Store) CreateNewChat(ctx context.Context, name string) (*Chat, error) {
	var created *Chat
	err := s.Run(ctx, "create_chat", func(ctx context.Context) error {
		c, err := s.svc.CreateChat(ctx, s.userID, name)
		if err != nil {
			return err
		}
		s.mu.Lock()
		if i := indexOfChat(s.chats, c.ChatID); i >= 0 {
			s.chats = append(s.chats[:i], s.chats[i+1:]...)
		}
		s.chats = append([]Chat{*c}, s.chats...)
		s.selectedID = c.ChatID
		s.mu.Unlock()
		created = c
		return nil
	})
	return created, err
}

// SendMessage appends the exchange to the chat it belongs to.
func (s *Store) SendMessage(ctx context.Context, chatID, query string) (*ChatMessage, error) {
	var sent *ChatMessage
	err := s.Run(ctx, "send_message", func(ctx context.Context) error {
		m, err := s.svc.SendMessage(ctx, s.userID, chatID, query)
		if err != nil {
			return err
		}
		s.mu.Lock()
		if i := indexOfChat(s.chats, chatID); i >= 0 {
			s.chats[i].Messages = append(s.chats[i].Messages, *m)
		}
		s.mu.Unlock()
		sent = m
		return nil
	})
	return sent, err
}

// SelectChat looks the chat up in memory. It never calls the backend.
func (s *Store) SelectChat(chatID string) (*Chat, error) {
	s.mu.Lock()
	i := indexOfChat(s.chats, chatID)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrChatNotFound
	}
	s.selectedID = chatID
	c := copyChat(s.chats[i])
	s.mu.Unlock()
	s.Notify()
	return &c, nil
}

func (s *Store) RequestAppointment(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	var created *Appointment
	err := s.Run(ctx, "request_appointment", func(ctx context.Context) error {
		a, err := s.svc.CreateAppointment(ctx, s.userID, req)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.appointments = append(s.appointments, *a)
		s.mu.Unlock()
		created = a
		return nil
	})
	return created, err
}

func (s *Store) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*Feedback, error) {
	var submitted *Feedback
	err := s.Run(ctx, "submit_feedback", func(ctx context.Context) error {
		f, err := s.svc.SubmitFeedback(ctx, s.userID, req)
		if err != nil {
			return err
		}
		submitted = f
		return nil
	})
	return submitted, err
}

// -- Reads --

func (s *Store) Chats() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyChats(s.chats)
}

func (s *Store) Appointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Appointment(nil), s.appointments...)
}

func (s *Store) RecentChats() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return RecentChats(s.chats)
}

func (s *Store) UpcomingAppointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return UpcomingAppointments(s.appointments, s.now())
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		UserID:               s.userID,
		Chats:                copyChats(s.chats),
		Appointments:         append([]Appointment{}, s.appointments...),
		RecentChats:          RecentChats(s.chats),
		UpcomingAppointments: UpcomingAppointments(s.appointments, s.now()),
		Loading:              s.Loading(),
		Error:                s.Err(),
	}
	if i := indexOfChat(s.chats, s.selectedID); i >= 0 {
		c := copyChat(s.chats[i])
		snap.SelectedChat = &c
	}
	return snap
}

// -- Derived views --

// RecentChats returns copies of the first five chats.
func RecentChats(chats []Chat) []Chat {
	n := len(chats)
	if n > recentChatLimit {
		n = recentChatLimit
	}
	return copyChats(chats[:n])
}

// clockBefore orders times of day. Unreadable times sort after readable ones
// and keep their relative order.
func clockBefore(a, b string) bool {
	ma, okA := wire.ClockMinutes(a)
	mb, okB := wire.ClockMinutes(b)
	if okA != okB {
		return okA
	}
	return okA && ma < mb
}

// UpcomingAppointments returns at most three pending or scheduled
// appointments dated today or later, earliest first. Appointments with an
// unreadable date are left out.
func UpcomingAppointments(appts []Appointment, now time.Time) []Appointment {
	today := wire.Day(now)
	type dated struct {
		a   Appointment
		day time.Time
	}
	var keep []dated
	for _, a := range appts {
		st := NormalizeStatus(string(a.Status))
		if st != StatusPending && st != StatusScheduled {
			continue
		}
		d, ok := wire.ParseDate(a.Date, now.Location())
		if !ok || d.Before(today) {
			continue
		}
		keep = append(keep, dated{a, d})
	}
	sort.SliceStable(keep, func(i, j int) bool {
		if !keep[i].day.Equal(keep[j].day) {
			return keep[i].day.Before(keep[j].day)
		}
		return clockBefore(keep[i].a.Time, keep[j].a.Time)
	})
	if len(keep) > upcomingLimit {
		keep = keep[:upcomingLimit]
	}
	out := make([]Appointment, 0, len(keep))
	for _, k := range keep {
		out = append(out, k.a)
	}
	return out
}

func indexOfChat(chats []Chat, id string) int {
	if id == "" {
		return -1
	}
	for i := range chats {
		if chats[i].ChatID == id {
			return i
		}
	}
	return -1
}

func copyChat(c Chat) Chat {
	c.Messages = append([]ChatMessage{}, c.Messages...)
	return c
}

func copyChats(chats []Chat) []Chat {
	out := make([]Chat, 0, len(chats))
	for _, c := range chats {
		out = append(out, copyChat(c))
	}
	return out
}
