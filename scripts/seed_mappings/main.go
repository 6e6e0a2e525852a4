package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"regexp"
	"strings"

	"strukpos/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Bulk-loads receiver-name to masked-account mappings from a CSV-ish file
// (NAME;MASKED_ACCOUNT;BANK per line, # for comments) into the mappings table.

var maskedAccountRE = regexp.MustCompile(`^\*{8,}\d{3,4}$`)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

func main() {
	file := flag.String("file", "mappings.csv", "mapping file (NAME;MASKED_ACCOUNT;BANK per line)")
	dry := flag.Bool("dry-run", true, "dry-run: don't write to DB")
	flag.Parse()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open %s: %v", *file, err)
	}
	defer f.Close()

	var db *gorm.DB
	if !*dry {
		db = mustDBFromEnv()
	}

	var loaded, skipped int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ";")
		if len(parts) < 2 {
			log.Printf("skip malformed line: %q", line)
			skipped++
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(parts[0]))
		acct := strings.TrimSpace(parts[1])
		bank := ""
		if len(parts) > 2 {
			bank = strings.ToUpper(strings.TrimSpace(parts[2]))
		}
		if !maskedAccountRE.MatchString(acct) {
			log.Printf("skip %s: account %q is not a masked shape", name, acct)
			skipped++
			continue
		}
		if *dry {
			log.Printf("would load %s -> %s (%s)", name, acct, bank)
			loaded++
			continue
		}
		m := models.AccountMapping{ReceiverName: name, MaskedAccount: acct, BankCode: bank}
		if err := db.Where("receiver_name = ?", name).FirstOrCreate(&m).Error; err != nil {
			log.Printf("create %s: %v", name, err)
			skipped++
			continue
		}
		if m.MaskedAccount != acct || m.BankCode != bank {
			m.MaskedAccount = acct
			m.BankCode = bank
			db.Save(&m)
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	log.Printf("done: loaded=%d skipped=%d dry=%v", loaded, skipped, *dry)
}
