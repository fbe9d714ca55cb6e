package store

import (
	"fmt"
	"strconv"
	"strings"

	"feedthread/internal/models"
)

type Op int

const (
	// OpUnshift inserts Value at the front of the array at Path.
	OpUnshift Op = iota + 1
	// OpInc adds Value to the number at Path.
	OpInc
)

func (o Op) String() string {
	switch o {
	case OpUnshift:
		return "unshift"
	case OpInc:
		return "inc"
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// FieldPath addresses a nested field; numeric segments are array indexes.
// Build paths with Field and At instead of formatting strings by hand.
type FieldPath []string

func Field(name string) FieldPath {
	return FieldPath{name}
}

func (p FieldPath) Field(name string) FieldPath {
	return append(p[:len(p):len(p)], name)
}

func (p FieldPath) At(i int) FieldPath {
	return append(p[:len(p):len(p)], strconv.Itoa(i))
}

// String renders the dotted form used by MongoDB, e.g. comments.3.replys.
func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// PGArray renders the text[] literal used by Postgres jsonb path operators,
// relative to the root column: comments.3.replys -> {3,replys}.
func (p FieldPath) PGArray() string {
	return "{" + strings.Join(p[1:], ",") + "}"
}

// Index parses segment i as an array index.
func (p FieldPath) Index(i int) (int, bool) {
	if i >= len(p) {
		return 0, false
	}
	n, err := strconv.Atoi(p[i])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Guard is a precondition: the string at Path must equal Equals.
type Guard struct {
	Path   FieldPath
	Equals string
}

// Patch is a single targeted update on one document.
type Patch struct {
	Collection Collection
	DocID      string
	Path       FieldPath
	Op         Op
	Value      any
	Guard      *Guard
}

func (p Patch) String() string {
	return fmt.Sprintf("%s %s/%s %s", p.Op, p.Collection, p.DocID, p.Path)
}

// Validate checks the patch shape before it reaches a backend.
func (p Patch) Validate() error {
	if p.DocID == "" {
		return fmt.Errorf("patch %s: empty document id", p)
	}
	if len(p.Path) == 0 {
		return fmt.Errorf("patch %s: empty path", p)
	}
	for _, seg := range p.Path {
		if seg == "" || strings.ContainsAny(seg, ".$") {
			return fmt.Errorf("patch %s: invalid path segment %q", p, seg)
		}
	}
	switch p.Op {
	case OpUnshift:
		if p.Value == nil {
			return fmt.Errorf("patch %s: nil value", p)
		}
	case OpInc:
		if _, ok := p.Value.(int64); !ok {
			return fmt.Errorf("patch %s: increment must be int64, got %T", p, p.Value)
		}
	default:
		return fmt.Errorf("patch %s: unknown op", p)
	}
	if p.Guard != nil && len(p.Guard.Path) == 0 {
		return fmt.Errorf("patch %s: guard without path", p)
	}
	return nil
}

// PushComment prepends a top-level comment to an article.
func PushComment(articleID string, c models.Comment) Patch {
	return Patch{
		Collection: Articles,
		DocID:      articleID,
		Path:       Field("comments"),
		Op:         OpUnshift,
		Value:      c,
	}
}

// PushReply prepends r to the replies of the comment at index. The patch
// only applies while that slot still holds commentID.
func PushReply(articleID string, index int, commentID string, r models.Reply) Patch {
	slot := Field("comments").At(index)
	return Patch{
		Collection: Articles,
		DocID:      articleID,
		Path:       slot.Field("replys"),
		Op:         OpUnshift,
		Value:      r,
		Guard:      &Guard{Path: slot.Field("comment_id"), Equals: commentID},
	}
}

// Inc adds by to a numeric field.
func Inc(coll Collection, docID, field string, by int64) Patch {
	return Patch{
		Collection: coll,
		DocID:      docID,
		Path:       Field(field),
		Op:         OpInc,
		Value:      by,
	}
}
