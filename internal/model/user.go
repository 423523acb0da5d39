package model

import "time"

// Role values stored in users.role. The role is a business
// classification, not a capability list: the authorization checks in
// the handler layer map a role to the actions it may perform.
const (
	RoleCustomer      = "CUSTOMER"       // guest booking rooms
	RoleHotelAdmin    = "HOTEL_ADMIN"    // administers exactly the hotels referencing them
	RolePlatformAdmin = "PLATFORM_ADMIN" // platform-wide operator
)

// User represents an application user record as stored in the
// `users` table. Handlers define separate response types with JSON
// tags; this struct is used by the repository layer only.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – given name.
//  Surname      – family name.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Phone        – contact phone number.
//  Document     – identity document number (nullable).
//  Role         – one of the Role* constants above.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Surname      string    // users.surname
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Phone        string    // users.phone
	Document     *string   // users.document (nullable)
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
