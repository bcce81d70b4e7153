// Package tracing records periodic snapshots of a pipeline's counters to
// a SQLite database, so a multi-run sweep can be queried after the fact
// instead of only observed live through the monitoring dashboard.
package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/secmeta/metrics"
)

// Snapshot is one row of recorded counters, taken at a given simulated
// time.
type Snapshot struct {
	ID  string
	Now float64
	metrics.Counters
}

// Recorder buffers counter snapshots and flushes them to a SQLite
// database in batches.
type Recorder struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	pending   []Snapshot
	batchSize int
}

// NewRecorder creates a Recorder that writes to path+".sqlite3". If path
// is empty a name derived from a random ID is used.
func NewRecorder(path string) *Recorder {
	r := &Recorder{
		dbName:    path,
		batchSize: 1000,
	}

	atexit.Register(func() { r.Flush() })

	return r
}

// Init establishes the database connection and creates the schema.
func (r *Recorder) Init() {
	r.createDatabase()
	r.createTable()
	r.prepareStatement()
}

// Record buffers a snapshot of counters at the given simulated time,
// flushing immediately if the batch is full.
func (r *Recorder) Record(now float64, c *metrics.Counters) {
	r.pending = append(r.pending, Snapshot{
		ID:       xid.New().String(),
		Now:      now,
		Counters: c.Snapshot(),
	})

	if len(r.pending) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all buffered snapshots to the database.
func (r *Recorder) Flush() {
	if len(r.pending) == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	for _, s := range r.pending {
		_, err := r.statement.Exec(
			s.ID, s.Now,
			s.Hits, s.Misses, s.Evictions,
			s.WriteQueueFull,
			s.PCBCoalescedBlocks, s.PCBPartialFlushes, s.PCBOverflows,
			s.PCBTotalPartials, s.PLUBPartials,
			s.NVMWrites, s.NVMBytesWritten, s.StaleBlocksDiscarded,
		)
		if err != nil {
			panic(err)
		}
	}
	r.mustExecute("COMMIT TRANSACTION")

	r.pending = nil
}

func (r *Recorder) createDatabase() {
	if r.dbName == "" {
		r.dbName = "secmeta_trace_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
}

func (r *Recorder) createTable() {
	r.mustExecute(`
		create table snapshot
		(
			id                     varchar(200) not null,
			now                    float        not null,
			hits                   integer      not null,
			misses                 integer      not null,
			evictions              integer      not null,
			write_queue_full       integer      not null,
			pcb_coalesced_blocks   integer      not null,
			pcb_partial_flushes    integer      not null,
			pcb_overflows          integer      not null,
			pcb_total_partials     integer      not null,
			plub_partials          integer      not null,
			nvm_writes             integer      not null,
			nvm_bytes_written      integer      not null,
			stale_blocks_discarded integer      not null
		);
	`)

	r.mustExecute(`create index snapshot_now_index on snapshot (now);`)
}

func (r *Recorder) prepareStatement() {
	sqlStr := `INSERT INTO snapshot VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}

	r.statement = stmt
}

func (r *Recorder) mustExecute(query string) sql.Result {
	res, err := r.Exec(query)
	if err != nil {
		panic(err)
	}
	return res
}

// Reader queries recorded snapshots back out of a SQLite database.
type Reader struct {
	*sql.DB
	filename string
}

// NewReader creates a Reader for the database at filename.
func NewReader(filename string) *Reader {
	return &Reader{filename: filename}
}

// Init establishes the database connection.
func (r *Reader) Init() {
	db, err := sql.Open("sqlite3", r.filename)
	if err != nil {
		panic(err)
	}

	r.DB = db
}

// ListSnapshots returns every recorded snapshot, ordered by simulated time.
func (r *Reader) ListSnapshots() []Snapshot {
	rows, err := r.Query(`
		SELECT id, now, hits, misses, evictions, write_queue_full,
			pcb_coalesced_blocks, pcb_partial_flushes, pcb_overflows,
			pcb_total_partials, plub_partials, nvm_writes,
			nvm_bytes_written, stale_blocks_discarded
		FROM snapshot ORDER BY now ASC
	`)
	if err != nil {
		panic(err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		err := rows.Scan(
			&s.ID, &s.Now,
			&s.Hits, &s.Misses, &s.Evictions,
			&s.WriteQueueFull,
			&s.PCBCoalescedBlocks, &s.PCBPartialFlushes, &s.PCBOverflows,
			&s.PCBTotalPartials, &s.PLUBPartials,
			&s.NVMWrites, &s.NVMBytesWritten, &s.StaleBlocksDiscarded,
		)
		if err != nil {
			panic(err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots
}
