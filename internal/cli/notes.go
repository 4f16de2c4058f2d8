package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"notekeeper/internal/filex"
	"notekeeper/internal/models"
	"notekeeper/internal/netx"
)

// addNote prompts for the note fields and runs the full save path. A remote
// failure still leaves the note saved locally.
func (a *App) addNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}
	categoryInput, err := getSimpleText(a.reader, "Enter category (Important/Work/Reading)", os.Stdout)
	if err != nil {
		return err
	}
	category, err := models.ParseCategory(categoryInput)
	if err != nil || category == models.CategoryAll {
		fmt.Println("Unknown category, using Important")
		category = models.CategoryImportant
	}

	var media []models.Media
	imagePath, err := getSimpleText(a.reader, "Path to image (empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	if imagePath != "" {
		media = append(media, models.Media{URI: imagePath, Type: models.MediaTypeImage})
	}
	videoPath, err := getSimpleText(a.reader, "Path to video (empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	if videoPath != "" {
		media = append(media, models.Media{URI: videoPath, Type: models.MediaTypeVideo})
	}

	o := a.noteService.AddNote(ctx, title, description, string(category), media)
	if !o.IsOk() {
		fmt.Println("Note saved locally but not synced:", o.Err())
		return o.Err()
	}

	fmt.Println("Saved:", o.Value().NoteID)
	return nil
}

// list prints the current snapshot of the watched note query. Usage:
// list [category] [search terms...].
func (a *App) list(ctx context.Context, args []string) error {
	category := models.CategoryAll
	search := ""
	if len(args) > 0 {
		if c, err := models.ParseCategory(args[0]); err == nil {
			category = c
			args = args[1:]
		}
	}
	if len(args) > 0 {
		search = strings.Join(args, " ")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := a.noteService.AllNotes(watchCtx, category, search)
	if err != nil {
		fmt.Println("Query failed:", err)
		return err
	}

	snapshot := <-ch
	if len(snapshot) == 0 {
		fmt.Println("No notes")
		return nil
	}
	for _, n := range snapshot {
		status := "pending"
		if n.SyncFlag == 1 {
			status = "synced"
		}
		fmt.Printf("%s  %-12s %-10s %s  [%s]\n", n.DateCreated, n.Category, status, n.Title, n.NoteID)
	}
	return nil
}

// view prints one note and downloads its remote media into ./media.
func (a *App) view(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: view <id>")
		return nil
	}

	note, err := a.noteService.Note(ctx, args[0])
	if err != nil {
		fmt.Println("Lookup failed:", err)
		return err
	}
	if note == nil {
		fmt.Println("Note not found:", args[0])
		return nil
	}

	fmt.Println("Title:      ", note.Title)
	fmt.Println("Category:   ", note.Category)
	fmt.Println("Created:    ", note.DateCreated)
	fmt.Println("Description:", note.Description)

	if note.MediaID != "" {
		if err := a.downloadMedia(ctx, note); err != nil {
			fmt.Println("Media download failed:", err)
		}
	}
	return nil
}

// downloadMedia fetches every download reference on the note into a local
// media directory.
func (a *App) downloadMedia(ctx context.Context, note *models.Note) error {
	dir, err := filex.EnsureSubDir("media")
	if err != nil {
		return err
	}

	for _, url := range strings.Split(note.MediaID, ",") {
		data, err := netx.Download(ctx, url)
		if err != nil {
			return err
		}

		name := filepath.Base(strings.SplitN(url, "?", 2)[0])
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return err
		}
		fmt.Println("Downloaded:", path)
	}
	return nil
}

func (a *App) deleteNote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: delete <id>")
		return nil
	}

	if o := a.syncService.DeleteNote(ctx, args[0]); !o.IsOk() {
		fmt.Println("Delete failed:", o.Err())
		return o.Err()
	}
	fmt.Println("Deleted:", args[0])
	return nil
}

func (a *App) syncPending(ctx context.Context) error {
	if o := a.syncService.UploadPendingNotes(ctx); !o.IsOk() {
		fmt.Println("Sync failed:", o.Err())
		return o.Err()
	}
	fmt.Println("All pending notes uploaded")
	return nil
}

func (a *App) fetch(ctx context.Context) error {
	o := a.syncService.FetchAndSaveNotes(ctx)
	if !o.IsOk() {
		fmt.Println("Fetch failed:", o.Err())
		return o.Err()
	}
	fmt.Printf("Fetched %d notes\n", len(o.Value()))
	return nil
}
