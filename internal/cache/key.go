package cache

import (
	"strings"

	"github.com/google/uuid"
)

// Key identifies one memoized read, e.g. notebooksByUser:<userId>.
type Key struct {
	Namespace string
	Parts     []string
}

func NewKey(namespace string, parts ...string) Key {
	return Key{Namespace: namespace, Parts: parts}
}

func (k Key) String() string {
	if len(k.Parts) == 0 {
		return k.Namespace
	}
	return k.Namespace + ":" + strings.Join(k.Parts, ":")
}

const (
	NamespaceNotebooksByUser = "notebooksByUser"
	NamespaceNotebookById    = "notebookById"
	NamespaceNoteById        = "noteById"
)

func NotebooksByUserKey(userId uuid.UUID) Key {
	return NewKey(NamespaceNotebooksByUser, userId.String())
}

func NotebookByIdKey(id uuid.UUID) Key {
	return NewKey(NamespaceNotebookById, id.String())
}

func NoteByIdKey(id uuid.UUID) Key {
	return NewKey(NamespaceNoteById, id.String())
}

func UserNotebooksTag(userId uuid.UUID) string {
	return "user:" + userId.String() + ":notebooks"
}

func SidebarTag(userId uuid.UUID) string {
	return "sidebar:" + userId.String()
}

func NotebookTag(id uuid.UUID) string {
	return "notebook:" + id.String()
}

func NoteTag(id uuid.UUID) string {
	return "note:" + id.String()
}
