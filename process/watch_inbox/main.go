package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"strukpos/models"
	"strukpos/pkg/receipt"
)

// Global DB handle for helper funcs
var db *gorm.DB

// global flags (parsed in main)
var verbose bool

var extMime = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// bankPrefixes maps an inbox filename prefix (e.g. "bri_20250725.jpg") to the
// receipt layout the engine should parse it with.
var bankPrefixes = map[string]receipt.BankType{
	"bca":     receipt.BankBCA,
	"bri":     receipt.BankBRI,
	"mandiri": receipt.BankMandiri,
	"bni":     receipt.BankBNI,
	"seabank": receipt.BankSeabank,
	"dana":    receipt.BankDana,
}

// processedSet remembers filenames already ingested so rescans and watch
// events stay idempotent.
type processedSet struct {
	seen map[string]struct{}
	mu   sync.RWMutex
}

func newProcessedSet() *processedSet {
	return &processedSet{seen: make(map[string]struct{}, 1024)}
}

func (ps *processedSet) has(name string) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	_, ok := ps.seen[name]
	return ok
}

func (ps *processedSet) put(name string) {
	ps.mu.Lock()
	ps.seen[name] = struct{}{}
	ps.mu.Unlock()
}

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

// Main: scans an inbox directory of receipt images, runs the extraction
// pipeline on each and stores Upload + ReceiptRecord rows, optional watch mode.
func main() {
	dirFlag := flag.String("dir", "inbox", "directory to scan for receipt images")
	userID := flag.Uint("user-id", 0, "User ID to assign receipts to (if omitted uses admin)")
	paperFlag := flag.String("paper", "58mm", "paper size hint (58mm or 80mm)")
	dryRun := flag.Bool("dry-run", false, "List candidate files without DB writes or OCR")
	watch := flag.Bool("watch", false, "Watch directory for new files")
	workers := flag.Int("workers", 0, "Worker pool size (default NumCPU)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose per-file logging")
	flag.Parse()

	if *dryRun {
		log.Printf("Dry-run: scanning %s (no DB interaction)", *dirFlag)
		files := listImageFiles(*dirFlag)
		log.Printf("Found %d candidate files", len(files))
		for _, f := range files {
			log.Printf("  %s -> bank=%s", f, bankFromFilename(f))
		}
		return
	}

	db = mustInitDBFromEnv()
	owner := resolveUser(*userID)

	paper := receipt.Paper58
	if *paperFlag == string(receipt.Paper80) {
		paper = receipt.Paper80
	}

	engine := receipt.NewEngine(os.Getenv("TESSDATA_LANG"))
	defer engine.Close()
	pipe := receipt.NewPipeline(engine, dbLookup{})

	ps := newProcessedSet()
	preloadProcessed(owner, ps)

	files := listImageFiles(*dirFlag)
	log.Printf("Scanning %d files (workers=%d)", len(files), effectiveWorkers(*workers))

	ing := &ingester{dir: *dirFlag, owner: owner, paper: paper, pipe: pipe, ps: ps}
	if *watch {
		fileCh := make(chan string, 256)
		go func() {
			for _, f := range files {
				fileCh <- f
			}
		}()
		go runWorkerPool(ing, fileCh, effectiveWorkers(*workers))
		if err := watchDirectory(*dirFlag, fileCh); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
		return
	}

	fileCh := make(chan string, len(files)+1)
	for _, f := range files {
		fileCh <- f
	}
	close(fileCh)
	runWorkerPool(ing, fileCh, effectiveWorkers(*workers))
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// dbLookup resolves mapped accounts for the recovery chain.
type dbLookup struct{}

func (dbLookup) Lookup(name string) (string, bool) {
	var m models.AccountMapping
	if err := db.Where("receiver_name = ?", strings.ToUpper(strings.TrimSpace(name))).First(&m).Error; err != nil {
		return "", false
	}
	return m.MaskedAccount, true
}

// preloadProcessed fetches filenames already ingested to minimize per-file queries.
func preloadProcessed(owner models.User, ps *processedSet) {
	var ups []models.Upload
	if err := db.Where("user_id = ?", owner.ID).Find(&ups).Error; err == nil {
		for i := range ups {
			ps.put(ups[i].FileName)
		}
	}
	log.Printf("Preloaded: uploads=%d", len(ps.seen))
}

// resolveUser finds the owning user either by explicit id or by admin username.
func resolveUser(id uint) models.User {
	var u models.User
	if id != 0 {
		if err := db.First(&u, id).Error; err != nil {
			log.Fatalf("failed to find user id %d: %v", id, err)
		}
		return u
	}
	if err := db.Where("username = ?", "admin").First(&u).Error; err != nil {
		log.Fatalf("no --user-id provided and admin user not found: %v", err)
	}
	return u
}

// bankFromFilename infers the layout from the filename prefix; anything
// unrecognized goes through the BCA rules, the most common inbox source.
func bankFromFilename(name string) receipt.BankType {
	lower := strings.ToLower(name)
	for prefix, bank := range bankPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return bank
		}
	}
	return receipt.BankBCA
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, ok := extMime[ext]
	return ok
}

func watchDirectory(dir string, fileCh chan<- string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	// simple debounce map of pending files; a file is forwarded once it has
	// been stable for a beat, so half-written copies are not picked up
	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				close(fileCh)
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
				name := filepath.Base(ev.Name)
				if !isSupportedExt(name) {
					continue
				}
				pending[name] = time.Now()
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					fileCh <- name
					delete(pending, name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				close(fileCh)
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// ingester holds everything one worker needs to process a file.
type ingester struct {
	dir   string
	owner models.User
	paper receipt.PaperSize
	pipe  *receipt.Pipeline
	ps    *processedSet
}

func runWorkerPool(ing *ingester, fileCh <-chan string, workers int) {
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				ing.processFile(name)
			}
		}()
	}
	wg.Wait()
}

// processFile runs the idempotent ingest of a single inbox image: create the
// Upload row, extract, store the ReceiptRecord.
func (ing *ingester) processFile(name string) {
	if ing.ps.has(name) {
		logV("skip %s (already ingested)", name)
		return
	}
	ing.ps.put(name)

	bank := bankFromFilename(name)
	full := filepath.Join(ing.dir, name)

	up := models.Upload{
		UserID:      ing.owner.ID,
		FileName:    name,
		StorePath:   full,
		ContentType: extMime[strings.ToLower(filepath.Ext(name))],
		BankType:    string(bank),
		PaperSize:   string(ing.paper),
	}
	if err := db.Create(&up).Error; err != nil {
		log.Printf("upload row failed for %s: %v", name, err)
		return
	}

	rec, rawText, err := ing.pipe.ExtractFile(full, bank, ing.paper)
	if err != nil {
		// Keep going: the pipeline hands back a placeholder record even when
		// the image cannot be decoded, and that row is what review catches.
		up.Failed = true
		up.FailedReason = err.Error()
		db.Save(&up)
		log.Printf("extract degraded for %s: %v", name, err)
	}

	upID := up.ID
	rr := models.ReceiptRecord{
		UserID:          ing.owner.ID,
		UploadID:        &upID,
		Date:            rec.Date,
		Time:            rec.Time,
		SenderName:      rec.SenderName,
		ReceiverName:    rec.ReceiverName,
		Amount:          rec.Amount,
		ReceiverBank:    string(rec.ReceiverBank),
		ReceiverAccount: rec.ReceiverAccount,
		ReferenceNumber: rec.ReferenceNumber,
		AdminFee:        rec.AdminFee,
		PaperSize:       string(rec.PaperSize),
		BankType:        string(rec.BankType),
		RawText:         rawText,
	}
	if rec.Amount == 0 {
		rr.NeedsReview = true
		rr.ReviewNote = "VALIDATION_ERROR: amount is zero"
	}
	if up.Failed {
		rr.NeedsReview = true
		rr.ReviewNote = "DECODE_ERROR: " + up.FailedReason
	}
	if err := db.Create(&rr).Error; err != nil {
		log.Printf("receipt row failed for %s: %v", name, err)
		return
	}
	logV("ingested %s bank=%s amount=%d receiver=%s", name, bank, rec.Amount, rec.ReceiverName)
}
