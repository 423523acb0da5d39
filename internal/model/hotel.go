package model

import "time"

// Hotel represents a property managed on the platform. Every hotel
// references exactly one administering user (AdminID); that user is
// the only HOTEL_ADMIN entitled to its rooms, events and invoices.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the hotel.
//  Address   – street address.
//  Phone     – front desk phone number.
//  Email     – contact email address.
//  AdminID   – user ID of the administering HOTEL_ADMIN.
//  CreatedAt – timestamp when the hotel was registered.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
	ID        uint64    // hotels.id
	Name      string    // hotels.name
	Address   string    // hotels.address
	Phone     string    // hotels.phone
	Email     string    // hotels.email
	AdminID   uint64    // hotels.admin_id
	CreatedAt time.Time // hotels.created_at
	UpdatedAt time.Time // hotels.updated_at
}
