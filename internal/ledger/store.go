// Package ledger is the durable record of budget line items and the
// four event kinds recorded against them (corrections, marketing
// estimates, contracts, revisions), plus mine/section reference data.
// It owns schema creation, migration, and every persistence invariant.
// Derived values (available/required funds) live in the status package
// and are never stored here.
package ledger

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Flavor selects which schema a data file carries.
type Flavor string

const (
	// FlavorInvest tracks budget line items (projects + events).
	FlavorInvest Flavor = "invest"
	// FlavorServices tracks services/labor contracts drawn down by acts.
	FlavorServices Flavor = "services"
)

// Store is a handle to one open data file. All operations go through a
// Store; switching databases means discarding the handle and opening a
// new one. Not safe for concurrent use.
type Store struct {
	db       *sql.DB
	path     string
	operator string
}

func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, storageErr("creating data dir", err)
	}
	// _txlock=immediate: transactions take the write lock up front, so a
	// revision's funds check and insert cannot interleave with another
	// writer's.
	db, err := sql.Open("sqlite", path+"?_txlock=immediate&_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, storageErr("opening data file", err)
	}
	return db, nil
}

// Open opens an existing data file (or an empty path, which becomes a
// fresh invest-flavor file), repairs a mis-tagged flavor, and applies
// any pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, path: path}

	if _, err := db.Exec(metaSQL); err != nil {
		_ = db.Close()
		return nil, storageErr("ensuring meta table", err)
	}

	flavor, err := s.readFlavor()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if flavor == "" {
		if err := s.setMeta("db_type", string(FlavorInvest)); err != nil {
			_ = db.Close()
			return nil, err
		}
		flavor = FlavorInvest
	}

	if _, err := db.Exec(minesSQL); err != nil {
		_ = db.Close()
		return nil, storageErr("creating reference schema", err)
	}

	switch flavor {
	case FlavorServices:
		if _, err := db.Exec(servicesSQL); err != nil {
			_ = db.Close()
			return nil, storageErr("creating services schema", err)
		}
	default:
		if _, err := db.Exec(investSQL); err != nil {
			_ = db.Close()
			return nil, storageErr("creating invest schema", err)
		}
		if err := s.migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// Create makes a new data file with the given flavor. The file must not
// already carry data of another flavor; Create simply writes the schema
// and stamps the metadata.
func Create(path string, flavor Flavor) (*Store, error) {
	if flavor != FlavorInvest && flavor != FlavorServices {
		return nil, validationf("unknown database flavor %q", flavor)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, path: path}

	if _, err := db.Exec(metaSQL); err != nil {
		_ = db.Close()
		return nil, storageErr("ensuring meta table", err)
	}
	if err := s.setMeta("db_type", string(flavor)); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(minesSQL); err != nil {
		_ = db.Close()
		return nil, storageErr("creating reference schema", err)
	}
	switch flavor {
	case FlavorInvest:
		if _, err := db.Exec(investSQL); err != nil {
			_ = db.Close()
			return nil, storageErr("creating invest schema", err)
		}
		if err := s.setMeta("schema_version", fmt.Sprint(schemaVersion)); err != nil {
			_ = db.Close()
			return nil, err
		}
	case FlavorServices:
		if _, err := db.Exec(servicesSQL); err != nil {
			_ = db.Close()
			return nil, storageErr("creating services schema", err)
		}
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the data file path this handle was opened with.
func (s *Store) Path() string { return s.path }

// DataDir is the directory the data file lives in; stored relative
// attachment paths resolve against it.
func (s *Store) DataDir() string {
	dir := filepath.Dir(s.path)
	if dir == "" {
		return "."
	}
	return dir
}

// SetOperator sets the name recorded as added_by when a mutation does
// not supply one explicitly.
func (s *Store) SetOperator(name string) { s.operator = name }

func (s *Store) addedBy(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if s.operator != "" {
		return s.operator
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return os.Getenv("USER")
}

// DBType reports the data file's flavor. A file tagged "services" that
// lacks the services tables is an old invest file with a bad tag and
// reads as invest.
func (s *Store) DBType() (Flavor, error) {
	flavor, err := s.readFlavor()
	if err != nil {
		return "", err
	}
	if flavor == "" {
		return FlavorInvest, nil
	}
	return flavor, nil
}

// RepairDBType rewrites the stored flavor tag. Used to fix old files
// mis-tagged as services.
func (s *Store) RepairDBType(flavor Flavor) error {
	if flavor != FlavorInvest && flavor != FlavorServices {
		return validationf("unknown database flavor %q", flavor)
	}
	return s.setMeta("db_type", string(flavor))
}

func (s *Store) readFlavor() (Flavor, error) {
	v, err := s.getMeta("db_type")
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", nil
	}
	flavor := Flavor(v)
	if flavor == FlavorServices {
		ok, err := s.tableExists("service_contracts")
		if err != nil {
			return "", err
		}
		if !ok {
			return FlavorInvest, nil
		}
	}
	return flavor, nil
}

func (s *Store) tableExists(name string) (bool, error) {
	var n string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&n)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, storageErr("checking table", err)
	}
	return true, nil
}

func (s *Store) getMeta(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM _meta WHERE key=?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", storageErr("reading meta", err)
	}
	return v, nil
}

func (s *Store) setMeta(key, value string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)", key, value,
	)
	return storageErr("writing meta", err)
}

// SaveAs copies the data file to newPath and returns a fresh handle on
// the copy. The original handle is closed either way.
func (s *Store) SaveAs(newPath string) (*Store, error) {
	// Flush WAL so the main file alone is a complete snapshot.
	if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return nil, storageErr("checkpointing before copy", err)
	}
	if err := s.db.Close(); err != nil {
		return nil, storageErr("closing before copy", err)
	}
	dst, err := filepath.Abs(newPath)
	if err != nil {
		return nil, storageErr("resolving target path", err)
	}
	if err := copyFile(s.path, dst); err != nil {
		return nil, storageErr("copying data file", err)
	}
	next, err := Open(dst)
	if err != nil {
		return nil, err
	}
	next.operator = s.operator
	return next, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
