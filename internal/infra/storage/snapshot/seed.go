package snapshot

import (
	_ "embed"
	"fmt"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

//go:embed seed.json
var seedData []byte

// Seed возвращает встроенный начальный набор данных
func Seed() *domain.Snapshot {
	snap, _, err := Decode(seedData)
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return snap
}

// decodeOrSeed разбирает данные, а при неразборчивом содержимом
// возвращает встроенный набор
func decodeOrSeed(data []byte, source string, log Logger) (*domain.Snapshot, error) {
	snap, migrated, err := Decode(data)
	if err != nil {
		log.Warn("Snapshot %s: %v, falling back to embedded seed", source, err)
		return Seed(), nil
	}
	if migrated {
		log.Info("Snapshot %s migrated to schema version %d", source, domain.CurrentSchemaVersion)
	}
	return snap, nil
}
