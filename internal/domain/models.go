// Package domain holds the entity types stored in Firestore. Field names in
// the JSON tags are the document field names; timestamps are ISO-8601
// strings after the repositories normalize them on read.
package domain

// Roles discriminate the typed views of the shared users collection.
const (
	RoleSuperAdmin = "superadmin"
	RoleSubAdmin   = "subadmin"
	RoleAlumni     = "alumni"
	RoleStudent    = "student"
	RoleUser       = "user"
)

// User is the base identity record. Every authenticated principal has
// exactly one, keyed by the identity provider's uid.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	UniversityID   string `json:"universityId,omitempty"`
	CollegeID      string `json:"collegeId,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Phone          string `json:"phone,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Personal  string `json:"personal,omitempty"`
}

type WorkExperience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartYear   int    `json:"startYear"`
	EndYear     int    `json:"endYear,omitempty"`
	Grade       string `json:"grade,omitempty"`
}

// Alumni is the role=="alumni" view of a users document. The slice fields
// are never nil on a read result.
type Alumni struct {
	User
	GraduationYear  int              `json:"graduationYear"`
	Degree          string           `json:"degree"`
	Department      string           `json:"department"`
	CurrentCompany  string           `json:"currentCompany,omitempty"`
	CurrentPosition string           `json:"currentPosition,omitempty"`
	Location        string           `json:"location,omitempty"`
	Bio             string           `json:"bio,omitempty"`
	Address         string           `json:"address,omitempty"`
	Skills          []string         `json:"skills"`
	Achievements    []Achievement    `json:"achievements"`
	Blogs           []Blog           `json:"blogs"`
	Connections     []string         `json:"connections"`
	SocialLinks     SocialLinks      `json:"socialLinks,omitzero"`
	Experience      []WorkExperience `json:"experience"`
	Education       []Education      `json:"education"`
}

// Student is the role=="student" view of a users document.
type Student struct {
	User
	CurrentYear int      `json:"currentYear"`
	Degree      string   `json:"degree"`
	Department  string   `json:"department"`
	RollNumber  string   `json:"rollNumber"`
	Connections []string `json:"connections"`
}

// CommonUser is the role=="user" view of a users document.
type CommonUser struct {
	User
	Connections []string `json:"connections"`
	Interests   []string `json:"interests"`
}

type College struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	UniversityID       string   `json:"universityId"`
	Logo               string   `json:"logo,omitempty"`
	Description        string   `json:"description"`
	Departments        []string `json:"departments"`
	EstablishedYear    int      `json:"establishedYear"`
	Website            string   `json:"website,omitempty"`
	ContactEmail       string   `json:"contactEmail"`
	Phone              string   `json:"phone,omitempty"`
	AdminName          string   `json:"adminName"`
	AdminEmail         string   `json:"adminEmail"`
	AdminPassword      string   `json:"adminPassword"`
	AdminContactNumber string   `json:"adminContactNumber,omitempty"`
	CreatedAt          string   `json:"createdAt"`
}

// Blog's Author is derived at read time from AuthorID and never persisted;
// it is nil when the referenced user no longer exists.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Tags        []string  `json:"tags"`
	AuthorID    string    `json:"authorId"`
	Author      *Alumni   `json:"author,omitempty"`
	PublishedAt string    `json:"publishedAt"`
	Likes       int       `json:"likes"`
	LikedBy     []string  `json:"likedBy"`
	Comments    []Comment `json:"comments"`
	Shares      int       `json:"shares"`
}

type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	AuthorID  string `json:"authorId"`
	BlogID    string `json:"blogId"`
	CreatedAt string `json:"createdAt"`
}

// Achievement categories.
const (
	CategoryAcademic     = "academic"
	CategoryProfessional = "professional"
	CategoryPersonal     = "personal"
	CategoryCommunity    = "community"
)

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Image       string `json:"image,omitempty"`
	UserID      string `json:"userId"`
}

// Connection statuses.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

// Connection is a directed edge between two users.
type Connection struct {
	ID          string `json:"id"`
	RequesterID string `json:"requesterId"`
	ReceiverID  string `json:"receiverId"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
}
