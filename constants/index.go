package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_USER  = "USER"
)

var ROLE = []string{ROLE_ADMIN, ROLE_USER}

const (
	MISSING_LOGIN_INPUT   = "Username and password are required"
	INVALID_USERNAME      = "Username does not exist"
	INVALID_PASSWORD      = "Incorrect password"
	USERNAME_EXISTS       = "Username already exists"
	PASSWORD_NOT_MATCH    = "Passwords do not match"
	INVALID_PINCODE       = "Invalid pincode. It should be a 6-digit number."
	CAN_NOT_HASH_PASSWORD = "Could not hash password"

	NOT_ADMIN            = "You do not have permission to access this page"
	ERROR_INTERNAL_ERROR = "Internal server error"
	ERROR_CREATE         = "Create failed"
	ERROR_EDIT           = "Update failed"
	ERROR_DELETE         = "Delete failed"
	ERROR_NOT_FOUND      = "Record not found"

	ERROR_PARSE_DATA_TO_LOCALS = "Could not read validated input"

	VEHICLE_NUMBER_EXISTS   = "Vehicle number already registered"
	VEHICLE_NOT_OWNED       = "Vehicle does not belong to you"
	VEHICLE_ALREADY_PARKED  = "This vehicle already has an open reservation"
	VEHICLE_IN_USE          = "Vehicle has an open reservation and cannot be removed"
	LOT_FULL                = "No vacant spot available in this lot"
	LOT_HAS_OCCUPIED_SPOTS  = "Lot has occupied spots and cannot be deleted"
	SPOT_OCCUPIED           = "Spot is occupied"
	SHRINK_OCCUPIED_SPOTS   = "Cannot shrink lot: spots to be removed are occupied"
	ALREADY_BOOKED_IN_LOT   = "You have already booked a spot in this parking lot"
	RESERVATION_NOT_OPEN    = "Reservation is already closed"
	RESERVATION_NOT_OWNED   = "Reservation does not belong to you"
	RESERVATION_NOT_FOUND   = "Reservation not found"
)
