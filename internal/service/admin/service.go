package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/scheduling"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/state"
)

// Service сервис администрирования справочников, техников и пользователей
type Service struct {
	state  StateService
	logger Logger
	cost   int
}

// NewService создает новый экземпляр сервиса администрирования
func NewService(state StateService, logger Logger) *Service {
	return &Service{
		state:  state,
		logger: logger,
		cost:   bcrypt.DefaultCost,
	}
}

// WithPasswordCost задает стоимость bcrypt (используется в тестах)
func (s *Service) WithPasswordCost(cost int) *Service {
	s.cost = cost
	return s
}

// ListTechnicians возвращает техников, отсортированных по ID
func (s *Service) ListTechnicians(ctx context.Context) ([]domain.Technician, error) {
	snap, err := s.load(ctx, "ListTechnicians")
	if err != nil {
		return nil, err
	}
	result := make([]domain.Technician, len(snap.Technicians))
	copy(result, snap.Technicians)
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpsertTechnician создает техника или обновляет существующего.
// Пустой ID означает создание с новым идентификатором.
func (s *Service) UpsertTechnician(ctx context.Context, req *TechnicianRequest, actor string) (*domain.Technician, *Result, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: technician name is required", ErrInvalidInput)
	}
	if err := validateCapacity(req.Capacity); err != nil {
		return nil, nil, err
	}
	cities := domain.NormalizeCities(req.Cities)
	if len(cities) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one city is required", ErrInvalidInput)
	}

	snap, err := s.load(ctx, "UpsertTechnician")
	if err != nil {
		return nil, nil, err
	}

	next := snap.Clone()
	tech := domain.Technician{
		ID:       strings.TrimSpace(req.ID),
		Name:     name,
		Cities:   cities,
		Capacity: req.Capacity,
	}

	if existing := next.FindTechnician(tech.ID); tech.ID != "" && existing != nil {
		*existing = tech
		// имя техника денормализовано в бронированиях
		for i := range next.Bookings {
			if next.Bookings[i].TechnicianID == tech.ID {
				next.Bookings[i].TechnicianName = tech.Name
			}
		}
	} else {
		if tech.ID == "" {
			tech.ID = uuid.NewString()
		}
		next.Technicians = append(next.Technicians, tech)
	}
	next.Cities = mergeList(next.Cities, cities)

	scheduling.Record(next, actor, ActionTechnicianUpsert, s.state.Now(),
		"technician=%s name=%q cities=%s capacity=%+v", tech.ID, tech.Name, strings.Join(cities, ","), tech.Capacity)

	warning, err := s.commit(ctx, "UpsertTechnician", next)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("UpsertTechnician: technician id=%s saved by %s", tech.ID, actor)
	return &tech, &Result{Warning: warning}, nil
}

// DeleteTechnician удаляет техника, если у него нет предстоящих бронирований
func (s *Service) DeleteTechnician(ctx context.Context, id, actor string) (*Result, error) {
	snap, err := s.load(ctx, "DeleteTechnician")
	if err != nil {
		return nil, err
	}
	tech := snap.FindTechnician(id)
	if tech == nil {
		return nil, ErrTechnicianNotFound
	}

	today := domain.FormatDate(s.state.Now())
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if b.TechnicianID == id && b.ConsumesSlot() && b.Date >= today {
			s.logger.Warn("DeleteTechnician: technician id=%s has booking id=%s on %s", id, b.ID, b.Date)
			return nil, ErrTechnicianHasBookings
		}
	}

	next := snap.Clone()
	kept := make([]domain.Technician, 0, len(next.Technicians))
	for _, t := range next.Technicians {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	next.Technicians = kept
	scheduling.Record(next, actor, ActionTechnicianDelete, s.state.Now(), "technician=%s name=%q", id, tech.Name)

	warning, err := s.commit(ctx, "DeleteTechnician", next)
	if err != nil {
		return nil, err
	}
	return &Result{Warning: warning}, nil
}

// ListCities возвращает список городов
func (s *Service) ListCities(ctx context.Context) ([]string, error) {
	snap, err := s.load(ctx, "ListCities")
	if err != nil {
		return nil, err
	}
	return sortedCopy(snap.Cities), nil
}

// AddCity добавляет город, повторное добавление не меняет состояние
func (s *Service) AddCity(ctx context.Context, city, actor string) (*Result, error) {
	return s.addToList(ctx, "AddCity", ActionCityAdd, city, actor, func(snap *domain.Snapshot) *[]string {
		return &snap.Cities
	})
}

// RemoveCity удаляет город из справочника. Техники его не теряют.
func (s *Service) RemoveCity(ctx context.Context, city, actor string) (*Result, error) {
	return s.removeFromList(ctx, "RemoveCity", ActionCityRemove, city, actor, func(snap *domain.Snapshot) *[]string {
		return &snap.Cities
	})
}

// ListActivities возвращает список видов работ
func (s *Service) ListActivities(ctx context.Context) ([]string, error) {
	snap, err := s.load(ctx, "ListActivities")
	if err != nil {
		return nil, err
	}
	return sortedCopy(snap.Activities), nil
}

// AddActivity добавляет вид работ
func (s *Service) AddActivity(ctx context.Context, activity, actor string) (*Result, error) {
	return s.addToList(ctx, "AddActivity", ActionActivityAdd, activity, actor, func(snap *domain.Snapshot) *[]string {
		return &snap.Activities
	})
}

// RemoveActivity удаляет вид работ
func (s *Service) RemoveActivity(ctx context.Context, activity, actor string) (*Result, error) {
	return s.removeFromList(ctx, "RemoveActivity", ActionActivityRemove, activity, actor, func(snap *domain.Snapshot) *[]string {
		return &snap.Activities
	})
}

// ListHolidays возвращает праздничные дни по возрастанию
func (s *Service) ListHolidays(ctx context.Context) ([]string, error) {
	snap, err := s.load(ctx, "ListHolidays")
	if err != nil {
		return nil, err
	}
	return sortedCopy(snap.Holidays), nil
}

// AddHoliday добавляет праздничный день в формате YYYY-MM-DD
func (s *Service) AddHoliday(ctx context.Context, date, actor string) (*Result, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid holiday date %q", ErrInvalidInput, date)
	}
	return s.addToList(ctx, "AddHoliday", ActionHolidayAdd, domain.FormatDate(day), actor, func(snap *domain.Snapshot) *[]string {
		return &snap.Holidays
	})
}

// RemoveHoliday удаляет праздничный день
func (s *Service) RemoveHoliday(ctx context.Context, date, actor string) (*Result, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid holiday date %q", ErrInvalidInput, date)
	}
	return s.removeFromList(ctx, "RemoveHoliday", ActionHolidayRemove, domain.FormatDate(day), actor, func(snap *domain.Snapshot) *[]string {
		return &snap.Holidays
	})
}

// ListUsers возвращает пользователей без хешей паролей
func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	snap, err := s.load(ctx, "ListUsers")
	if err != nil {
		return nil, err
	}
	result := make([]UserView, 0, len(snap.Users))
	for _, u := range snap.Users {
		result = append(result, toUserView(u))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

// CreateUser создает пользователя
func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest, actor string) (*UserView, *Result, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	snap, err := s.load(ctx, "CreateUser")
	if err != nil {
		return nil, nil, err
	}
	if snap.FindUser(username) != nil {
		return nil, nil, ErrUserExists
	}

	hash, err := hashPassword(req.Password, s.cost)
	if err != nil {
		s.logger.Error("CreateUser: failed to hash password: %v", err)
		return nil, nil, fmt.Errorf("%w: CreateUser - hash password: %v", ErrInternal, err)
	}

	user := domain.User{
		Username:     username,
		DisplayName:  displayName(req.DisplayName, username),
		PasswordHash: hash,
		Permissions:  req.Permissions,
	}

	next := snap.Clone()
	next.Users = append(next.Users, user)
	scheduling.Record(next, actor, ActionUserCreate, s.state.Now(), "user=%s permissions=%+v", username, user.Permissions)

	warning, err := s.commit(ctx, "CreateUser", next)
	if err != nil {
		return nil, nil, err
	}
	view := toUserView(user)
	return &view, &Result{Warning: warning}, nil
}

// UpdateUser меняет отображаемое имя, права и, при необходимости, пароль
func (s *Service) UpdateUser(ctx context.Context, req *UpdateUserRequest, actor string) (*UserView, *Result, error) {
	if req.Password != "" && len(req.Password) < minPasswordLength {
		return nil, nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	snap, err := s.load(ctx, "UpdateUser")
	if err != nil {
		return nil, nil, err
	}
	if snap.FindUser(req.Username) == nil {
		return nil, nil, ErrUserNotFound
	}

	next := snap.Clone()
	user := next.FindUser(req.Username)
	if user.Permissions.ManageUsers && !req.Permissions.ManageUsers && countUserManagers(next.Users) == 1 {
		return nil, nil, ErrLastAdmin
	}

	user.DisplayName = displayName(req.DisplayName, user.Username)
	user.Permissions = req.Permissions
	if req.Password != "" {
		hash, err := hashPassword(req.Password, s.cost)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: UpdateUser - hash password: %v", ErrInternal, err)
		}
		user.PasswordHash = hash
	}
	scheduling.Record(next, actor, ActionUserUpdate, s.state.Now(),
		"user=%s permissions=%+v password_changed=%t", user.Username, user.Permissions, req.Password != "")

	view := toUserView(*user)
	warning, err := s.commit(ctx, "UpdateUser", next)
	if err != nil {
		return nil, nil, err
	}
	return &view, &Result{Warning: warning}, nil
}

// DeleteUser удаляет пользователя. Последнего администратора пользователей удалить нельзя.
func (s *Service) DeleteUser(ctx context.Context, username, actor string) (*Result, error) {
	snap, err := s.load(ctx, "DeleteUser")
	if err != nil {
		return nil, err
	}
	user := snap.FindUser(username)
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Permissions.ManageUsers && countUserManagers(snap.Users) == 1 {
		return nil, ErrLastAdmin
	}

	next := snap.Clone()
	key := domain.NormalizeKey(username)
	kept := make([]domain.User, 0, len(next.Users))
	for _, u := range next.Users {
		if domain.NormalizeKey(u.Username) != key {
			kept = append(kept, u)
		}
	}
	next.Users = kept
	scheduling.Record(next, actor, ActionUserDelete, s.state.Now(), "user=%s", user.Username)

	warning, err := s.commit(ctx, "DeleteUser", next)
	if err != nil {
		return nil, err
	}
	return &Result{Warning: warning}, nil
}

// Authenticate проверяет имя пользователя и пароль
func (s *Service) Authenticate(ctx context.Context, username, password string) (*UserView, error) {
	snap, err := s.load(ctx, "Authenticate")
	if err != nil {
		return nil, err
	}
	user := snap.FindUser(username)
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := verifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Authenticate: stored hash of user %s is unreadable: %v", user.Username, err)
		return nil, ErrInvalidCredentials
	}
	view := toUserView(*user)
	return &view, nil
}

// EnsureBootstrapUser создает администратора со всеми правами, если пользователей нет.
// Возвращает true, если пользователь был создан.
func (s *Service) EnsureBootstrapUser(ctx context.Context, username, password, actor string) (bool, error) {
	snap, err := s.load(ctx, "EnsureBootstrapUser")
	if err != nil {
		return false, err
	}
	if len(snap.Users) > 0 {
		return false, nil
	}

	_, result, err := s.CreateUser(ctx, &CreateUserRequest{
		Username:    username,
		DisplayName: "Administrator",
		Password:    password,
		Permissions: domain.Permissions{
			ManageBookings: true,
			ManageCapacity: true,
			ViewAnalytics:  true,
			ManageUsers:    true,
		},
	}, actor)
	if err != nil {
		return false, err
	}
	if result.Warning != "" {
		s.logger.Warn("EnsureBootstrapUser: %s", result.Warning)
	}
	s.logger.Info("EnsureBootstrapUser: created bootstrap user %s", username)
	return true, nil
}

// SetAPIToken сохраняет токен удаленной синхронизации в снапшоте
func (s *Service) SetAPIToken(ctx context.Context, token, actor string) (*Result, error) {
	snap, err := s.load(ctx, "SetAPIToken")
	if err != nil {
		return nil, err
	}
	next := snap.Clone()
	next.APIToken = strings.TrimSpace(token)
	scheduling.Record(next, actor, ActionAPITokenUpdate, s.state.Now(), "token_set=%t", next.APIToken != "")

	warning, err := s.commit(ctx, "SetAPIToken", next)
	if err != nil {
		return nil, err
	}
	return &Result{Warning: warning}, nil
}

// AuditLog возвращает последние записи журнала, новые первыми.
// limit <= 0 означает весь журнал.
func (s *Service) AuditLog(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	snap, err := s.load(ctx, "AuditLog")
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(snap.Logs) {
		limit = len(snap.Logs)
	}
	result := make([]domain.AuditEntry, limit)
	copy(result, snap.Logs[:limit])
	return result, nil
}

func (s *Service) addToList(ctx context.Context, op, action, value, actor string, list func(*domain.Snapshot) *[]string) (*Result, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: value is required", ErrInvalidInput)
	}

	snap, err := s.load(ctx, op)
	if err != nil {
		return nil, err
	}
	if containsKey(*list(snap), value) {
		return &Result{}, nil
	}

	next := snap.Clone()
	target := list(next)
	*target = append(*target, value)
	sort.Strings(*target)
	scheduling.Record(next, actor, action, s.state.Now(), "value=%q", value)

	warning, err := s.commit(ctx, op, next)
	if err != nil {
		return nil, err
	}
	return &Result{Warning: warning}, nil
}

func (s *Service) removeFromList(ctx context.Context, op, action, value, actor string, list func(*domain.Snapshot) *[]string) (*Result, error) {
	snap, err := s.load(ctx, op)
	if err != nil {
		return nil, err
	}
	if !containsKey(*list(snap), value) {
		return &Result{}, nil
	}

	next := snap.Clone()
	target := list(next)
	key := domain.NormalizeKey(value)
	kept := make([]string, 0, len(*target))
	for _, v := range *target {
		if domain.NormalizeKey(v) != key {
			kept = append(kept, v)
		}
	}
	*target = kept
	scheduling.Record(next, actor, action, s.state.Now(), "value=%q", strings.TrimSpace(value))

	warning, err := s.commit(ctx, op, next)
	if err != nil {
		return nil, err
	}
	return &Result{Warning: warning}, nil
}

func (s *Service) load(ctx context.Context, op string) (*domain.Snapshot, error) {
	snap, err := s.state.Current(ctx)
	if err != nil {
		s.logger.Error("%s: failed to load state: %v", op, err)
		return nil, fmt.Errorf("%w: %s - load state: %v", ErrInternal, op, err)
	}
	return snap, nil
}

func (s *Service) commit(ctx context.Context, op string, next *domain.Snapshot) (string, error) {
	if err := s.state.Commit(ctx, next); err != nil {
		if errors.Is(err, state.ErrPersistFailed) {
			s.logger.Warn("%s: %v", op, err)
			return state.PersistWarning, nil
		}
		s.logger.Error("%s: failed to save state: %v", op, err)
		return "", fmt.Errorf("%w: %s - save state: %v", ErrInternal, op, err)
	}
	return "", nil
}

func validateCapacity(c domain.Capacity) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}
	for _, v := range []int{c.Morning, c.Afternoon, c.Evening, c.Saturday, c.Sunday, c.Holiday} {
		if v > domain.MaxCapacity {
			return fmt.Errorf("%w: capacity must not exceed %d", ErrInvalidInput, domain.MaxCapacity)
		}
	}
	return nil
}

func countUserManagers(users []domain.User) int {
	n := 0
	for _, u := range users {
		if u.Permissions.ManageUsers {
			n++
		}
	}
	return n
}

func displayName(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}

func containsKey(list []string, value string) bool {
	key := domain.NormalizeKey(value)
	for _, v := range list {
		if domain.NormalizeKey(v) == key {
			return true
		}
	}
	return false
}

// mergeList добавляет отсутствующие значения без учета регистра
func mergeList(list, values []string) []string {
	out := make([]string, len(list), len(list)+len(values))
	copy(out, list)
	for _, v := range values {
		if !containsKey(out, v) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
