package inmemory

import (
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository implements database.Repository against process memory,
// optionally persisted to a JSON file between runs (MEMORY_DB_PATH). It backs
// tests and mongo-less development set ups; filter support covers what the
// application actually uses: equality, dotted paths, $or branches,
// case-insensitive $regex and the $gte/$gt/$lte/$lt/$ne range operators.
type MemoryRepository[T database.BaseModel] struct {
	collection string
	uniqueKeys [][]string

	mutex sync.RWMutex
	docs  []bson.M
}

func New[T database.BaseModel](collection string, uniqueKeys [][]string) *MemoryRepository[T] {
	repo := &MemoryRepository[T]{
		collection: collection,
		uniqueKeys: uniqueKeys,
	}
	repo.load()
	return repo
}

func (repo *MemoryRepository[T]) CreateOne(payload T) (*T, error) {
	parsed := payload.ParseModel().(*T)
	doc, err := toDocument(parsed)
	if err != nil {
		return nil, err
	}

	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, keys := range repo.uniqueKeys {
		for _, existing := range repo.docs {
			if matchesKeys(existing, doc, keys) {
				return nil, database.ErrDuplicateKey
			}
		}
	}
	repo.docs = append(repo.docs, doc)
	repo.persist()
	return parsed, nil
}

func (repo *MemoryRepository[T]) FindByID(id string) (*T, error) {
	return repo.FindOneByFilter(map[string]any{"_id": id})
}

func (repo *MemoryRepository[T]) FindOneByFilter(filter map[string]any) (*T, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, doc := range repo.docs {
		if matchesFilter(doc, filter) {
			return fromDocument[T](doc)
		}
	}
	return nil, nil
}

func (repo *MemoryRepository[T]) FindMany(filter map[string]any, opts ...database.FindOptions) ([]T, error) {
	repo.mutex.RLock()
	matched := []bson.M{}
	for _, doc := range repo.docs {
		if matchesFilter(doc, filter) {
			matched = append(matched, doc)
		}
	}
	repo.mutex.RUnlock()

	for _, opt := range opts {
		if opt.Sort != nil {
			applySort(matched, opt.Sort)
		}
		if opt.Skip != nil {
			if int(*opt.Skip) >= len(matched) {
				matched = nil
			} else {
				matched = matched[*opt.Skip:]
			}
		}
		if opt.Limit != nil && int(*opt.Limit) < len(matched) {
			matched = matched[:*opt.Limit]
		}
	}

	results := []T{}
	for _, doc := range matched {
		parsed, err := fromDocument[T](doc)
		if err != nil {
			return nil, err
		}
		results = append(results, *parsed)
	}
	return results, nil
}

func (repo *MemoryRepository[T]) CountDocs(filter map[string]any) (int64, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	var count int64
	for _, doc := range repo.docs {
		if matchesFilter(doc, filter) {
			count++
		}
	}
	return count, nil
}

func (repo *MemoryRepository[T]) UpdatePartialByID(id string, payload map[string]any) (int64, error) {
	return repo.UpdatePartialByFilter(map[string]any{"_id": id}, payload)
}

func (repo *MemoryRepository[T]) UpdatePartialByFilter(filter map[string]any, payload map[string]any) (int64, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, doc := range repo.docs {
		if matchesFilter(doc, filter) {
			for key, value := range payload {
				setPath(doc, key, normalizeValue(value))
			}
			setPath(doc, "updatedAt", normalizeValue(time.Now()))
			repo.persist()
			return 1, nil
		}
	}
	return 0, nil
}

func (repo *MemoryRepository[T]) IncrementFields(filter map[string]any, fields map[string]int64) (int64, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, doc := range repo.docs {
		if matchesFilter(doc, filter) {
			for key, delta := range fields {
				current, _ := toInt64(getPath(doc, key))
				setPath(doc, key, current+delta)
			}
			setPath(doc, "updatedAt", normalizeValue(time.Now()))
			repo.persist()
			return 1, nil
		}
	}
	return 0, nil
}

func (repo *MemoryRepository[T]) DeleteByID(id string) (int64, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for i, doc := range repo.docs {
		if matchesFilter(doc, map[string]any{"_id": id}) {
			repo.docs = append(repo.docs[:i], repo.docs[i+1:]...)
			repo.persist()
			return 1, nil
		}
	}
	return 0, nil
}

// persist writes the collection snapshot to disk when MEMORY_DB_PATH is set.
// Best effort only; callers never see persistence failures.
func (repo *MemoryRepository[T]) persist() {
	basePath := os.Getenv("MEMORY_DB_PATH")
	if basePath == "" {
		return
	}
	snapshot := bson.M{"docs": repo.docs}
	data, err := bson.MarshalExtJSON(snapshot, false, false)
	if err != nil {
		logger.Error("could not serialize in-memory collection", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.collection,
		})
		return
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return
	}
	os.WriteFile(repo.filePath(basePath), data, 0o644)
}

func (repo *MemoryRepository[T]) load() {
	basePath := os.Getenv("MEMORY_DB_PATH")
	if basePath == "" {
		return
	}
	data, err := os.ReadFile(repo.filePath(basePath))
	if err != nil {
		return
	}
	var snapshot struct {
		Docs []bson.M `bson:"docs"`
	}
	if err := bson.UnmarshalExtJSON(data, false, &snapshot); err != nil {
		logger.Warning("discarding unreadable in-memory collection snapshot", logger.LoggerOptions{
			Key:  "collection",
			Data: repo.collection,
		})
		return
	}
	repo.docs = snapshot.Docs
}

func (repo *MemoryRepository[T]) filePath(basePath string) string {
	return basePath + string(os.PathSeparator) + strings.ToLower(repo.collection) + ".json"
}

func toDocument(payload any) (bson.M, error) {
	raw, err := bson.Marshal(payload)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument[T any](doc bson.M) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var result T
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func matchesKeys(existing bson.M, incoming bson.M, keys []string) bool {
	for _, key := range keys {
		cmp, comparable := compareValues(getPath(existing, key), getPath(incoming, key))
		if !comparable || cmp != 0 {
			return false
		}
	}
	return true
}

func matchesFilter(doc bson.M, filter map[string]any) bool {
	for key, expected := range filter {
		if key == "$or" {
			if !matchesAnyBranch(doc, expected) {
				return false
			}
			continue
		}
		actual := getPath(doc, key)
		if operators, ok := expected.(map[string]any); ok && hasOperator(operators) {
			if !matchesOperators(actual, operators) {
				return false
			}
			continue
		}
		cmp, comparable := compareValues(actual, expected)
		if !comparable || cmp != 0 {
			return false
		}
	}
	return true
}

func hasOperator(value map[string]any) bool {
	for key := range value {
		if strings.HasPrefix(key, "$") {
			return true
		}
	}
	return false
}

func matchesAnyBranch(doc bson.M, branches any) bool {
	switch list := branches.(type) {
	case []map[string]any:
		for _, branch := range list {
			if matchesFilter(doc, branch) {
				return true
			}
		}
	case []any:
		for _, branch := range list {
			if subFilter, ok := branch.(map[string]any); ok && matchesFilter(doc, subFilter) {
				return true
			}
		}
	}
	return false
}

func matchesOperators(actual any, operators map[string]any) bool {
	for op, operand := range operators {
		if op == "$regex" {
			if !matchesRegex(actual, operand, operators["$options"]) {
				return false
			}
			continue
		}
		if op == "$options" {
			// consumed alongside $regex
			continue
		}
		cmp, comparable := compareValues(actual, operand)
		switch op {
		case "$gte":
			if !comparable || cmp < 0 {
				return false
			}
		case "$gt":
			if !comparable || cmp <= 0 {
				return false
			}
		case "$lte":
			if !comparable || cmp > 0 {
				return false
			}
		case "$lt":
			if !comparable || cmp >= 0 {
				return false
			}
		case "$ne":
			if comparable && cmp == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func matchesRegex(actual any, pattern any, options any) bool {
	value, ok := actual.(string)
	if !ok {
		return false
	}
	expr, ok := pattern.(string)
	if !ok {
		return false
	}
	if opts, ok := options.(string); ok && strings.Contains(opts, "i") {
		expr = "(?i)" + expr
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return compiled.MatchString(value)
}

// compareValues orders two scalars of possibly different wire encodings.
// The second return value reports whether the pair was comparable at all.
func compareValues(a any, b any) (int, bool) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0, true
		}
		return 0, false
	}
	if aTime, ok := asTime(a); ok {
		bTime, ok := asTime(b)
		if !ok {
			return 0, false
		}
		switch {
		case aTime.Before(bTime):
			return -1, true
		case aTime.After(bTime):
			return 1, true
		}
		return 0, true
	}
	if aNum, ok := asFloat(a); ok {
		bNum, ok := asFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case aNum < bNum:
			return -1, true
		case aNum > bNum:
			return 1, true
		}
		return 0, true
	}
	aStr, aOk := a.(string)
	bStr, bOk := b.(string)
	if aOk && bOk {
		return strings.Compare(aStr, bStr), true
	}
	if a == b {
		return 0, true
	}
	return 0, false
}

func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), true
	case primitive.DateTime:
		return v.Time().UTC(), true
	}
	return time.Time{}, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func toInt64(value any) (int64, bool) {
	parsed, ok := asFloat(value)
	return int64(parsed), ok
}

func getPath(doc bson.M, path string) any {
	segments := strings.Split(path, ".")
	var current any = doc
	for _, segment := range segments {
		asMap, ok := current.(bson.M)
		if !ok {
			return nil
		}
		current = asMap[segment]
	}
	return current
}

func setPath(doc bson.M, path string, value any) {
	segments := strings.Split(path, ".")
	current := doc
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(bson.M)
		if !ok {
			next = bson.M{}
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// normalizeValue converts values to the representation bson.Marshal would
// have produced so later comparisons behave the same on both code paths.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return primitive.NewDateTimeFromTime(v)
	}
	return value
}

func applySort(docs []bson.M, sortSpec map[string]any) {
	for key, direction := range sortSpec {
		descending := false
		if dir, ok := asFloat(direction); ok && dir < 0 {
			descending = true
		}
		key := key
		sort.SliceStable(docs, func(i, j int) bool {
			cmp, comparable := compareValues(getPath(docs[i], key), getPath(docs[j], key))
			if !comparable {
				return false
			}
			if descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
}
