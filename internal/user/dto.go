package user

type GetProfileResponse struct {
	ID            uint32 `json:"id"`
	LoginID       string `json:"loginId"`
	Name          string `json:"name"`
	CustomerCount int64  `json:"customerCount"`
}
