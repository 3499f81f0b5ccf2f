package derive

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tern/internal/ast"
	"tern/internal/iface"
	"tern/internal/project"
)

// Increment when DecisionPayload format changes.
const decisionCacheSchemaVersion uint16 = 1

// DiskCache persists eligibility decisions keyed by declaration shape, so
// a warm recompilation skips the oracle for unchanged types. Thread-safe
// for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DecisionPayload is the cached oracle output for one declaration shape.
// The answers stay valid exactly as long as the shape digest does: the
// oracle is pure over the shape, so the pair never needs revalidation
// beyond the key match.
type DecisionPayload struct {
	Schema uint16
	Shape  project.Digest

	// Offered maps the interface tag to the oracle's answer.
	Offered map[uint8]bool
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps the cache root cleanable by hand.
	return filepath.Join(c.dir, "derive", hexKey+".mp")
}

// Put serializes and atomically writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DecisionPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A missing
// entry and a schema mismatch both read as a clean miss.
func (c *DiskCache) Get(key project.Digest, out *DecisionPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != decisionCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// ShapeDigest hashes everything the oracle reads: the declaration kind
// and flags, the backing type's kind, and each case or stored field in
// declaration order with its canonical ordinal, labels, payload type
// kinds, and raw values. Two declarations with equal digests get equal
// oracle answers.
func ShapeDigest(sess *Session, declID ast.DeclID) project.Digest {
	decl := sess.AST.Decls.Get(declID)
	h := sha256.New()
	w := func(vs ...uint64) {
		var buf [8]byte
		for _, v := range vs {
			binary.LittleEndian.PutUint64(buf[:], v)
			_, _ = h.Write(buf[:])
		}
	}
	ws := func(s string) {
		w(uint64(len(s)))
		_, _ = h.Write([]byte(s))
	}

	w(uint64(decl.Kind))
	ws(sess.Strings.MustLookup(decl.Name))
	w(boolBit(decl.HasUnavailableCase), boolBit(decl.Interop), boolBit(decl.IsFinal))
	w(uint64(sess.Types.KindOf(decl.RawType)))

	w(uint64(len(decl.Cases)))
	for _, caseID := range decl.Cases {
		c := sess.AST.Decls.Case(caseID)
		ws(sess.Strings.MustLookup(c.Name))
		w(uint64(c.Ordinal), boolBit(c.RawIsSet), uint64(c.RawInt))
		if c.RawString != 0 {
			ws(sess.Strings.MustLookup(c.RawString))
		}
		w(uint64(len(c.Fields)))
		for _, f := range c.Fields {
			hashField(sess, ws, w, f)
		}
	}

	w(uint64(len(decl.Fields)))
	for _, f := range decl.Fields {
		hashField(sess, ws, w, f)
	}

	var out project.Digest
	copy(out[:], h.Sum(nil))
	return out
}

func hashField(sess *Session, ws func(string), w func(...uint64), f ast.FieldID) {
	field := sess.AST.Decls.Field(f)
	label := ""
	if field.Label != 0 {
		label = sess.Strings.MustLookup(field.Label)
	}
	ws(label)
	ty := sess.ResolveFieldType(f)
	w(uint64(sess.Types.KindOf(ty)))
	ws(sess.Types.DisplayName(ty, sess.Strings))
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// CachedOffers answers the oracle through the disk cache: a shape-keyed
// hit serves all interfaces at once, a miss runs the oracle per known
// interface and stores the full answer set.
func CachedOffers(sess *Session, cache *DiskCache, target ast.TargetID, declID ast.DeclID, k iface.Known) (bool, error) {
	key := ShapeDigest(sess, declID)

	var payload DecisionPayload
	hit, err := cache.Get(key, &payload)
	if err != nil {
		return false, err
	}
	if hit && payload.Shape == key {
		if offered, ok := payload.Offered[uint8(k)]; ok {
			return offered, nil
		}
	}

	payload = DecisionPayload{
		Schema:  decisionCacheSchemaVersion,
		Shape:   key,
		Offered: make(map[uint8]bool, len(iface.All())),
	}
	for _, known := range iface.All() {
		payload.Offered[uint8(known)] = OffersDerivation(sess, target, declID, known)
	}
	if err := cache.Put(key, &payload); err != nil {
		return false, err
	}
	return payload.Offered[uint8(k)], nil
}
