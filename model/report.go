package model

type LotRevenue struct {
	LotID        uint    `json:"lotId"`
	LotName      string  `json:"lotName"`
	Reservations int64   `json:"reservations"`
	Revenue      float64 `json:"revenue"`
}

type LotOccupancy struct {
	LotID     uint   `json:"lotId"`
	LotName   string `json:"lotName"`
	Total     int64  `json:"total"`
	Occupied  int64  `json:"occupied"`
	Available int64  `json:"available"`
}

type AdminSummary struct {
	Users            int64          `json:"users"`
	Vehicles         int64          `json:"vehicles"`
	Lots             int64          `json:"lots"`
	Spots            int64          `json:"spots"`
	OpenReservations int64          `json:"openReservations"`
	TotalRevenue     float64        `json:"totalRevenue"`
	Revenue          []LotRevenue   `json:"revenue"`
	Occupancy        []LotOccupancy `json:"occupancy"`
}

type UserLotSpend struct {
	LotID        uint    `json:"lotId"`
	LotName      string  `json:"lotName"`
	Reservations int64   `json:"reservations"`
	TotalSpent   float64 `json:"totalSpent"`
}

type UserSummary struct {
	Reservations     int64          `json:"reservations"`
	OpenReservations int64          `json:"openReservations"`
	TotalSpent       float64        `json:"totalSpent"`
	PerLot           []UserLotSpend `json:"perLot"`
}
