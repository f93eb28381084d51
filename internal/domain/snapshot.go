package domain

// Permissions are the per-user feature flags
type Permissions struct {
	ManageBookings bool `json:"manageBookings"`
	ManageCapacity bool `json:"manageCapacity"`
	ViewAnalytics  bool `json:"viewAnalytics"`
	ManageUsers    bool `json:"manageUsers"`
}

// Permission names a single flag of Permissions
type Permission string

const (
	PermManageBookings Permission = "manage_bookings"
	PermManageCapacity Permission = "manage_capacity"
	PermViewAnalytics  Permission = "view_analytics"
	PermManageUsers    Permission = "manage_users"
)

// Has reports whether the flag named by perm is set
func (p Permissions) Has(perm Permission) bool {
	switch perm {
	case PermManageBookings:
		return p.ManageBookings
	case PermManageCapacity:
		return p.ManageCapacity
	case PermViewAnalytics:
		return p.ViewAnalytics
	case PermManageUsers:
		return p.ManageUsers
	}
	return false
}

// User is an operator of the admin tool
type User struct {
	Username     string      `json:"username"`
	DisplayName  string      `json:"displayName"`
	PasswordHash string      `json:"passwordHash"`
	Permissions  Permissions `json:"permissions"`
}

// AuditEntry is an append-only record of a state-changing action
type AuditEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

// Snapshot is the aggregate root and the single unit of persistence
type Snapshot struct {
	Version     int          `json:"version"`
	Technicians []Technician `json:"technicians"`
	Bookings    []Booking    `json:"bookings"`
	Activities  []string     `json:"activities"`
	Cities      []string     `json:"cities"`
	Holidays    []string     `json:"holidays"`
	Users       []User       `json:"users"`
	Logs        []AuditEntry `json:"logs"` // newest first
	APIToken    string       `json:"apiToken,omitempty"`
}

// NewSnapshot returns an empty snapshot at the current schema version
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:     CurrentSchemaVersion,
		Technicians: []Technician{},
		Bookings:    []Booking{},
		Activities:  []string{},
		Cities:      []string{},
		Holidays:    []string{},
		Users:       []User{},
		Logs:        []AuditEntry{},
	}
}

// Clone returns a deep copy so callers can derive a new snapshot without
// touching the one they were given
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return NewSnapshot()
	}
	out := &Snapshot{
		Version:    s.Version,
		Activities: cloneStrings(s.Activities),
		Cities:     cloneStrings(s.Cities),
		Holidays:   cloneStrings(s.Holidays),
		APIToken:   s.APIToken,
	}

	out.Technicians = make([]Technician, len(s.Technicians))
	for i, t := range s.Technicians {
		t.Cities = cloneStrings(t.Cities)
		out.Technicians[i] = t
	}

	out.Bookings = make([]Booking, len(s.Bookings))
	copy(out.Bookings, s.Bookings)

	out.Users = make([]User, len(s.Users))
	copy(out.Users, s.Users)

	out.Logs = make([]AuditEntry, len(s.Logs))
	copy(out.Logs, s.Logs)

	return out
}

// HolidaySet returns the holiday list as a set
func (s *Snapshot) HolidaySet() HolidaySet {
	return NewHolidaySet(s.Holidays)
}

// FindTechnician returns the technician with the given id or nil
func (s *Snapshot) FindTechnician(id string) *Technician {
	for i := range s.Technicians {
		if s.Technicians[i].ID == id {
			return &s.Technicians[i]
		}
	}
	return nil
}

// FindBooking returns the index of the booking with the given id or -1
func (s *Snapshot) FindBooking(id string) int {
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

// FindUser returns the user with the given username (case-insensitive) or nil
func (s *Snapshot) FindUser(username string) *User {
	key := NormalizeKey(username)
	for i := range s.Users {
		if NormalizeKey(s.Users[i].Username) == key {
			return &s.Users[i]
		}
	}
	return nil
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
