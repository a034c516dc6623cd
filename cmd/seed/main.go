// Copyright (c) 2026 Libris. All rights reserved.

// Command seed loads the sample catalog into the database.
//
// It is idempotent: authors conflict on name and books on ISBN, and both
// conflicts are skipped, so re-running the seeder never duplicates rows.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/anhtran/libris/internal/platform/config"
	pgstore "github.com/anhtran/libris/internal/platform/postgres"
	"github.com/anhtran/libris/pkg/pointer"
	"github.com/anhtran/libris/pkg/slug"
)

type seedAuthor struct {
	name        string
	birthDate   string
	dateOfDeath string // empty means living
}

type seedBook struct {
	title  string
	isbn   string
	year   int
	author string
}

var seedAuthors = []seedAuthor{
	{"Jane Austen", "1775-12-16", "1817-07-18"},
	{"Charles Dickens", "1812-02-07", "1870-06-09"},
	{"George Orwell", "1903-06-25", "1950-01-21"},
	{"J.K. Rowling", "1965-07-31", ""},
	{"Stephen King", "1947-09-21", ""},
	{"Haruki Murakami", "1949-01-12", ""},
	{"Margaret Atwood", "1939-11-18", ""},
}

var seedBooks = []seedBook{
	{"Pride and Prejudice", "9780141439518", 1813, "Jane Austen"},
	{"Emma", "9780141439587", 1815, "Jane Austen"},
	{"Oliver Twist", "9780141439747", 1838, "Charles Dickens"},
	{"A Christmas Carol", "9780141389479", 1843, "Charles Dickens"},
	{"1984", "9780452284234", 1949, "George Orwell"},
	{"Animal Farm", "9780452284241", 1945, "George Orwell"},
	{"Harry Potter and the Philosopher's Stone", "9780747532699", 1997, "J.K. Rowling"},
	{"Harry Potter and the Chamber of Secrets", "9780747538493", 1998, "J.K. Rowling"},
	{"The Shining", "9780307743657", 1977, "Stephen King"},
	{"IT", "9781501142970", 1986, "Stephen King"},
	{"Norwegian Wood", "9780375704024", 1987, "Haruki Murakami"},
	{"The Handmaid's Tale", "9780385490818", 1985, "Margaret Atwood"},
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "libris-seed"))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("connect to postgres failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	for _, a := range seedAuthors {
		var death *string
		if a.dateOfDeath != "" {
			death = pointer.To(a.dateOfDeath)
		}

		tag, err := pool.Exec(ctx, `
			INSERT INTO authors (name, birth_date, date_of_death, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			ON CONFLICT (name) DO NOTHING
		`, a.name, a.birthDate, death)
		if err != nil {
			log.Error("seed author failed", slog.String("name", a.name), slog.Any("error", err))
			os.Exit(1)
		}
		if tag.RowsAffected() > 0 {
			log.Info("author_seeded", slog.String("name", a.name))
		}
	}

	for _, b := range seedBooks {
		tag, err := pool.Exec(ctx, `
			INSERT INTO books (isbn, title, slug, publication_year, author_id, created_at, updated_at)
			SELECT $1, $2, $3, $4, a.id, NOW(), NOW()
			FROM authors a
			WHERE a.name = $5
			ON CONFLICT (isbn) DO NOTHING
		`, b.isbn, b.title, slug.From(b.title), b.year, b.author)
		if err != nil {
			log.Error("seed book failed", slog.String("title", b.title), slog.Any("error", err))
			os.Exit(1)
		}
		if tag.RowsAffected() > 0 {
			log.Info("book_seeded", slog.String("title", b.title))
		}
	}

	log.Info("seed_complete",
		slog.Int("authors", len(seedAuthors)),
		slog.Int("books", len(seedBooks)),
	)
}
