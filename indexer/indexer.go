package indexer

import (
	"context"
	"strings"

	cosmoslog "cosmossdk.io/log"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/guilddao/guild-app/types"
)

const eventBufferSize = 1024

// Indexer mirrors the ledger's event stream into sqlite so the query
// service can page over history without touching the state tree.
type Indexer struct {
	logger cosmoslog.Logger
	db     *gorm.DB
	events chan types.Event
}

func NewIndexer(logger cosmoslog.Logger, dbPath string) (*Indexer, error) {
	logger.Info("NewIndexer", "dbPath", dbPath)
	db, err := gorm.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Proposal{}, &Vote{}, &Member{}, &Ragequit{}, &Transfer{}).Error; err != nil {
		return nil, err
	}
	return &Indexer{
		logger: logger.With("module", "indexer"),
		db:     db,
		events: make(chan types.Event, eventBufferSize),
	}, nil
}

// Sink is wired as the state db's event sink; it must not block the
// commit path, so a full buffer drops the event with a log line.
func (c *Indexer) Sink(ev types.Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Error("event buffer full, drop", "type", ev.Type)
	}
}

func (c *Indexer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-c.events:
				c.handleEvent(ev)
			}
		}
	}()
}

func (c *Indexer) Close() error {
	return c.db.Close()
}

func (c *Indexer) handleEvent(ev types.Event) {
	switch ev.Type {
	case types.EventProposalType:
		c.handleEventProposal(ev)
	case types.EventVoteType:
		c.handleEventVote(ev)
	case types.EventProcessedType:
		c.handleEventProcessed(ev)
	case types.EventRagequitType:
		c.handleEventRagequit(ev)
	case types.EventBalanceType:
		c.handleEventBalance(ev)
	case types.EventTransferType:
		c.handleEventTransfer(ev)
	}
}

func (c *Indexer) handleEventProposal(ev types.Event) {
	body, ok := ev.Body.(*types.EventProposal)
	if !ok {
		c.logger.Error("decode event fail", "type", ev.Type)
		return
	}
	p := Proposal{
		Id:           body.Index,
		Kind:         uint64(body.Kind),
		Sponsor:      body.Sponsor.Hex(),
		VotingStarts: body.VotingStarts,
		VotingEnds:   body.VotingEnds,
		Status:       uint64(types.ProposalStatusVoting),
		DetailsHash:  body.DetailsHash.Hex(),
	}
	if err := c.db.Save(&p).Error; err != nil {
		c.logger.Error("save proposal fail", "err", err, "proposal", body.Index)
	}
}

func (c *Indexer) handleEventVote(ev types.Event) {
	body, ok := ev.Body.(*types.EventVote)
	if !ok {
		c.logger.Error("decode event fail", "type", ev.Type)
		return
	}
	v := Vote{
		Proposal: body.Proposal,
		Voter:    body.Voter.Hex(),
		Support:  body.Support,
		Weight:   body.Weight,
		Unit:     ev.Unit,
	}
	if err := c.db.Create(&v).Error; err != nil {
		c.logger.Error("save vote fail", "err", err, "proposal", body.Proposal)
	}
}

func (c *Indexer) handleEventProcessed(ev types.Event) {
	body, ok := ev.Body.(*types.EventProcessed)
	if !ok {
		c.logger.Error("decode event fail", "type", ev.Type)
		return
	}
	updates := map[string]interface{}{
		"status":     uint64(body.Status),
		"processed":  true,
		"passed":     body.Passed,
		"action_log": strings.Join(body.ActionLog, "\n"),
	}
	if err := c.db.Model(&Proposal{}).Where("id = ?", body.Proposal).Updates(updates).Error; err != nil {
		c.logger.Error("update proposal fail", "err", err, "proposal", body.Proposal)
	}
}

func (c *Indexer) handleEventRagequit(ev types.Event) {
	body, ok := ev.Body.(*types.EventRagequit)
	if !ok {
		c.logger.Error("decode event fail", "type", ev.Type)
		return
	}
	r := Ragequit{
		Member:      body.Member.Hex(),
		Recipient:   body.Recipient.Hex(),
		LootBurnt:   body.LootBurnt,
		SharesBurnt: body.SharesBurnt,
		Unit:        ev.Unit,
	}
	if err := c.db.Create(&r).Error; err != nil {
		c.logger.Error("save ragequit fail", "err", err, "member", body.Member.Hex())
	}
}

func (c *Indexer) handleEventBalance(ev types.Event) {
	body, ok := ev.Body.(*types.EventBalance)
	if !ok {
		c.logger.Error("decode event fail", "type", ev.Type)
		return
	}
	m := Member{
		Address: body.Member.Hex(),
		Loot:    body.Loot,
		Shares:  body.Shares,
		Unit:    ev.Unit,
	}
	if err := c.db.Save(&m).Error; err != nil {
		c.logger.Error("save member fail", "err", err, "member", body.Member.Hex())
	}
}

func (c *Indexer) handleEventTransfer(ev types.Event) {
	body, ok := ev.Body.(*types.EventTransfer)
	if !ok {
		c.logger.Error("decode event fail", "type", ev.Type)
		return
	}
	t := Transfer{
		From:   body.From.Hex(),
		To:     body.To.Hex(),
		Loot:   body.Loot,
		Shares: body.Shares,
		Unit:   ev.Unit,
	}
	if err := c.db.Create(&t).Error; err != nil {
		c.logger.Error("save transfer fail", "err", err, "from", body.From.Hex())
	}
}

func (c *Indexer) getProposals(page int, pageSize int) ([]Proposal, uint64, error) {
	proposals := []Proposal{}
	err := c.db.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&Proposal{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (c *Indexer) getProposalById(proposalId uint64) (Proposal, error) {
	proposal := Proposal{}
	err := c.db.Where("id = ?", proposalId).First(&proposal).Error
	if err != nil {
		return proposal, err
	}
	return proposal, nil
}

func (c *Indexer) getProposalsBySponsor(sponsor string, page int, pageSize int) ([]Proposal, uint64, error) {
	proposals := []Proposal{}
	err := c.db.Where("sponsor = ?", sponsor).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&proposals).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&Proposal{}).Where("sponsor = ?", sponsor).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func (c *Indexer) getVotesByProposal(proposal uint64, page int, pageSize int) ([]Vote, error) {
	votes := []Vote{}
	err := c.db.Where("proposal = ?", proposal).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (c *Indexer) getVotesByVoter(voter string, page int, pageSize int) ([]Vote, error) {
	votes := []Vote{}
	err := c.db.Where("voter = ?", voter).Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (c *Indexer) getMembers(page int, pageSize int) ([]Member, uint64, error) {
	members := []Member{}
	err := c.db.Order("shares desc").Offset(page * pageSize).Limit(pageSize).Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = c.db.Model(&Member{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (c *Indexer) getRagequits(member string, page int, pageSize int) ([]Ragequit, uint64, error) {
	quits := []Ragequit{}
	q := c.db.Model(&Ragequit{})
	if member != "" {
		q = q.Where("member = ?", member)
	}
	err := q.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&quits).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = q.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return quits, total, nil
}

func (c *Indexer) getTransfersByMember(member string, page int, pageSize int) ([]Transfer, uint64, error) {
	transfers := []Transfer{}
	q := c.db.Model(&Transfer{})
	if member != "" {
		q = q.Where("`from` = ? OR `to` = ?", member, member)
	}
	err := q.Order("id desc").Offset(page * pageSize).Limit(pageSize).Find(&transfers).Error
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	err = q.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	return transfers, total, nil
}
