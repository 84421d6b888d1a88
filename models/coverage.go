package models

// ZipInfo is a US ZIP code with its tabulation-area centroid.
type ZipInfo struct {
	Zip   string  `bson:"zip" json:"zip"`
	City  string  `bson:"city" json:"city"`
	State string  `bson:"state" json:"state"`
	Lat   float64 `bson:"lat" json:"lat"`
	Lng   float64 `bson:"lng" json:"lng"`
}

// WorkerZip maps a worker to one ZIP code they serve.
type WorkerZip struct {
	WorkerID string `bson:"worker_id" json:"worker_id"`
	Zip      string `bson:"zip" json:"zip"`
}

// ZipCoverage is the answer to a coverage lookup for one ZIP code.
type ZipCoverage struct {
	Zip         string   `json:"zip"`
	Covered     bool     `json:"covered"`
	WorkerCount int      `json:"worker_count"`
	WorkerIDs   []string `json:"worker_ids,omitempty"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
}
