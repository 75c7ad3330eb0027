package domain

// Kind identifies a catalog item kind.
type Kind string

const (
	// KindWorkflow is a multi-stage workflow definition.
	KindWorkflow Kind = "workflow"
	// KindSkill is a single reusable skill definition.
	KindSkill Kind = "skill"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindWorkflow || k == KindSkill
}

// Visibility controls who may discover an item.
type Visibility string

const (
	// VisibilityPublic items are discoverable by anyone allowed to see the catalog.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate items are discoverable only by their owner and by users
	// who referenced them.
	VisibilityPrivate Visibility = "private"
)

// Item is a catalog entry: a workflow or skill definition authored either by the
// platform (system items) or by a user. The search engine only reads items; the
// CRUD layer and the embedding recompute job own the writes.
type Item struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	Content     string
	OwnerID     string // empty for system items with no owner
	IsSystem    bool
	IsActive    bool
	Visibility  Visibility
	Tags        []string
	Deleted     bool

	// Kind-specific counters surfaced in search results.
	AttachmentCount int // skills
	StageCount      int // workflows
}

// Source classifies result provenance.
type Source string

const (
	// SourceSystem marks platform-curated items.
	SourceSystem Source = "system"
	// SourceUser marks user-owned items.
	SourceUser Source = "user"
)

// ItemSource derives provenance from the system flag.
func (i Item) ItemSource() Source {
	if i.IsSystem {
		return SourceSystem
	}
	return SourceUser
}
