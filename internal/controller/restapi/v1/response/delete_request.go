package response

type Send struct {
	Success bool `json:"success" example:"true"`
}

type Submitted struct {
	ID     string `json:"id" example:"6c1e0d6e-5f0e-4a57-9b4e-2c1f3f0f8a11"`
	Status string `json:"status" example:"queued"`
}
