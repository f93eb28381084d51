package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// flat capacity keys of version 0 technicians
var legacyCapacityKeys = map[string]string{
	"capacityMorning":   "morning",
	"capacityAfternoon": "afternoon",
	"capacityEvening":   "evening",
	"capacitySaturday":  "saturday",
	"capacitySunday":    "sunday",
	"capacityHoliday":   "holiday",
}

var snapshotLists = []string{"technicians", "bookings", "activities", "cities", "holidays", "users", "logs"}

// Encode сериализует снапшот в JSON в той же нормальной форме, что отдает Decode.
// Города техников хранятся как множество: после Save и Load снапшот равен
// исходному с точностью до порядка и повторов городов.
func Encode(snap *domain.Snapshot) ([]byte, error) {
	out := snap.Clone()
	normalize(out)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// Decode разбирает JSON снапшота любой поддерживаемой версии.
// Старые версии поднимаются до domain.CurrentSchemaVersion, migrated = true,
// если данные пришлось изменить.
func Decode(data []byte) (snap *domain.Snapshot, migrated bool, err error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if raw == nil {
		return nil, false, fmt.Errorf("%w: empty document", ErrDecode)
	}

	version := 0
	if v, ok := raw["version"].(float64); ok {
		version = int(v)
	}

	if version < 1 {
		migrateV0(raw)
		migrated = true
	}
	if version < 2 {
		migrateV1(raw)
		migrated = true
	}
	if migrated {
		raw["version"] = domain.CurrentSchemaVersion
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	snap = domain.NewSnapshot()
	if err := json.Unmarshal(normalized, snap); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	normalize(snap)
	return snap, migrated, nil
}

// migrateV0 переводит техников на список городов и вложенную ёмкость
func migrateV0(raw map[string]interface{}) {
	techs, _ := raw["technicians"].([]interface{})
	for _, item := range techs {
		tech, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		if _, ok := tech["cities"]; !ok {
			cities := []interface{}{}
			if city, ok := tech["city"].(string); ok && strings.TrimSpace(city) != "" {
				cities = append(cities, city)
			}
			tech["cities"] = cities
		}
		delete(tech, "city")

		capacity, ok := tech["capacity"].(map[string]interface{})
		if !ok {
			capacity = map[string]interface{}{}
		}
		for legacy, key := range legacyCapacityKeys {
			if v, ok := tech[legacy]; ok {
				if _, exists := capacity[key]; !exists {
					capacity[key] = v
				}
				delete(tech, legacy)
			}
		}
		tech["capacity"] = capacity
	}
}

// migrateV1 проставляет значения по умолчанию для полей бронирований
// и пустые списки вместо отсутствующих
func migrateV1(raw map[string]interface{}) {
	for _, key := range snapshotLists {
		if _, ok := raw[key].([]interface{}); !ok {
			raw[key] = []interface{}{}
		}
	}

	bookings, _ := raw["bookings"].([]interface{})
	for _, item := range bookings {
		b, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		setDefault(b, "kind", string(domain.KindStandard))
		setDefault(b, "status", string(domain.StatusConfirmed))
		setDefault(b, "executionStatus", string(domain.ExecutionPending))
	}
}

func setDefault(m map[string]interface{}, key, value string) {
	if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
		return
	}
	m[key] = value
}

// normalize приводит nil-списки к пустым и ограничивает журнал аудита
func normalize(snap *domain.Snapshot) {
	if snap.Technicians == nil {
		snap.Technicians = []domain.Technician{}
	}
	if snap.Bookings == nil {
		snap.Bookings = []domain.Booking{}
	}
	if snap.Activities == nil {
		snap.Activities = []string{}
	}
	if snap.Cities == nil {
		snap.Cities = []string{}
	}
	if snap.Holidays == nil {
		snap.Holidays = []string{}
	}
	if snap.Users == nil {
		snap.Users = []domain.User{}
	}
	if snap.Logs == nil {
		snap.Logs = []domain.AuditEntry{}
	}
	for i := range snap.Technicians {
		snap.Technicians[i].Cities = domain.NormalizeCities(snap.Technicians[i].Cities)
	}
	if len(snap.Logs) > domain.MaxAuditEntries {
		snap.Logs = snap.Logs[:domain.MaxAuditEntries]
	}
}
