package complaints

import "time"

// Complaint statuses. ToggleStatus advances along the fixed cycle
// Abierto -> En Proceso -> Resuelto -> Abierto. "Rechazado" survives in old
// documents as a display value; toggling from it lands back on Abierto.
const (
	StatusOpen       = "Abierto"
	StatusInProgress = "En Proceso"
	StatusResolved   = "Resuelto"
	StatusRejected   = "Rechazado"
)

// Categories is the fixed set offered by the complaint form.
var Categories = []string{
	"Servicios Públicos",
	"Seguridad",
	"Transporte",
	"Salud",
	"Educación",
	"Ambiente",
	"Baches",
	"Iluminación",
	"Basura",
	"Espacios Verdes",
	"Agua",
	"Cloacas",
	"Otros",
}

// NextStatus advances the status cycle. Anything outside the cycle,
// including legacy "Rechazado", resets to Abierto.
func NextStatus(current string) string {
	switch current {
	case StatusOpen:
		return StatusInProgress
	case StatusInProgress:
		return StatusResolved
	default:
		return StatusOpen
	}
}

// IsValidCategory reports whether the category is one of the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CommentAuthor describes who left a comment.
type CommentAuthor struct {
	UID         string `firestore:"uid" json:"uid"`
	DisplayName string `firestore:"displayName" json:"displayName"`
	Admin       bool   `firestore:"admin" json:"admin"`
}

// Comment is a single entry in a complaint's append-only comment list.
type Comment struct {
	ID        string        `firestore:"id" json:"id"`
	Text      string        `firestore:"text" json:"text"`
	CreatedAt time.Time     `firestore:"createdAt" json:"createdAt"`
	Author    CommentAuthor `firestore:"author" json:"author"`
}

// Complaint is a citizen-submitted issue report.
// @Description Complaint tracked through the Abierto/En Proceso/Resuelto lifecycle
type Complaint struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title" example:"Semáforo roto en Av. Principal"`
	Category    string    `firestore:"category" json:"category" example:"Baches"`
	Location    string    `firestore:"location" json:"location" example:"Esquina de Calle Falsa 123"`
	Description string    `firestore:"description" json:"description"`
	Anonymous   bool      `firestore:"anonymous" json:"anonymous"`
	Status      string    `firestore:"status" json:"status" enums:"Abierto,En Proceso,Resuelto"`
	Votes       int64     `firestore:"votes" json:"votes"`
	Comments    []Comment `firestore:"comments" json:"comments"`
	ImageURL    string    `firestore:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ImagePath   string    `firestore:"imagePath,omitempty" json:"imagePath,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
}

// HasImage reports whether a stored evidence image is attached.
func (c *Complaint) HasImage() bool {
	return c.ImagePath != ""
}
