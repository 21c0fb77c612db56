package indexer

// sqlite models

type Proposal struct {
	Id           uint64 `gorm:"primaryKey" json:"id"`
	Kind         uint64 `json:"kind"`
	Sponsor      string `json:"sponsor"`
	VotingStarts uint64 `json:"voting_starts"`
	VotingEnds   uint64 `json:"voting_ends"`
	Status       uint64 `json:"status"`
	Processed    bool   `json:"processed"`
	Passed       bool   `json:"passed"`
	DetailsHash  string `json:"details_hash"`
	ActionLog    string `json:"action_log"`
}

type Vote struct {
	Id       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Proposal uint64 `json:"proposal"`
	Voter    string `json:"voter"`
	Support  bool   `json:"support"`
	Weight   uint64 `json:"weight"`
	Unit     uint64 `json:"unit"`
}

type Member struct {
	Address string `gorm:"primaryKey" json:"address"`
	Loot    uint64 `json:"loot"`
	Shares  uint64 `json:"shares"`
	Unit    uint64 `json:"unit"`
}

type Ragequit struct {
	Id          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Member      string `json:"member"`
	Recipient   string `json:"recipient"`
	LootBurnt   uint64 `json:"loot_burnt"`
	SharesBurnt uint64 `json:"shares_burnt"`
	Unit        uint64 `json:"unit"`
}

type Transfer struct {
	Id     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Loot   uint64 `json:"loot"`
	Shares uint64 `json:"shares"`
	Unit   uint64 `json:"unit"`
}
