// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations, stats
//	├── lessons/         # Lesson CRUD, dict updates, cascade delete
//	└── flashcards/      # Flashcard CRUD, term lookup, contexts
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database, log)
//
//	lessonsRepo := lessons.NewRepository(db.DB)
//	cardsRepo := flashcards.NewRepository(db.DB)
//
//	lesson, err := lessonsRepo.GetByID(ctx, 12)
//	card, err := cardsRepo.FindByTerm(ctx, annotation.Key("Haus"), &lesson.ID)
//
// Each repository satisfies a store interface declared by its consumer in
// internal/services; compile-time checks live in internal/interfaces.
package database
