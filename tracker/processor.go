package tracker

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/schema"
)

// Processor consumes decoded Aurora packets and folds the ones it
// understands (StartGameState, PowerHistory) into a World. Grounded on
// hearthy/tracker/processor.py:Processor.
type Processor struct {
	World  *World
	logger *zap.Logger
}

// NewProcessor creates a processor over a fresh World.
func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{World: NewWorld(), logger: logger}
}

// Process folds one decoded packet into the world. Unrecognized packet
// types are logged at debug level and otherwise ignored, matching the
// source's "Ignoring packet of type ..." branch.
func (p *Processor) Process(packet *schema.MessageValue) error {
	switch packet.Type.Name {
	case "StartGameState":
		return p.processCreateGameLike(packet)
	case "PowerHistory":
		for _, item := range packet.GetRepeated("List") {
			if err := p.processPower(item.(*schema.MessageValue)); err != nil {
				return err
			}
		}
		return nil
	default:
		p.logger.Debug("ignoring packet", zap.String("type", packet.Type.Name))
		return nil
	}
}

// processCreateGameLike handles both StartGameState (the top-level
// packet) and PowerHistoryCreateGame (nested inside a PowerHistory
// entry) — both carry the same GameEntity/Players shape.
func (p *Processor) processCreateGameLike(v *schema.MessageValue) error {
	gameEntityVal, ok := v.Get("GameEntity")
	if !ok {
		return fmt.Errorf("tracker: create-game packet missing GameEntity")
	}
	gameEntity := gameEntityVal.(*schema.MessageValue)

	id, err := entityID(gameEntity)
	if err != nil {
		return err
	}
	if _, exists := p.World.Get(id); exists {
		p.logger.Info("game entity already exists, ignoring create-game event", zap.Int64("id", id))
	} else {
		e := newEntity(id)
		applyEntityTags(e, gameEntity)
		e.Label = "TheGame"
		if err := p.World.Add(e); err != nil {
			return err
		}
	}

	for _, playerVal := range v.GetRepeated("Players") {
		player := playerVal.(*schema.MessageValue)
		playerEntityVal, ok := player.Get("Entity")
		if !ok {
			return fmt.Errorf("tracker: player missing Entity")
		}
		playerEntity := playerEntityVal.(*schema.MessageValue)

		peid, err := entityID(playerEntity)
		if err != nil {
			return err
		}
		if _, exists := p.World.Get(peid); exists {
			continue
		}
		e := newEntity(peid)
		applyEntityTags(e, playerEntity)
		playerID, _ := player.Get("Id")
		e.Label = fmt.Sprintf("Player%d", playerID)
		if err := p.World.Add(e); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) processPower(power *schema.MessageValue) error {
	if fullVal, ok := power.Get("FullEntity"); ok {
		full := fullVal.(*schema.MessageValue)
		id, err := tagInt(full, "Entity")
		if err != nil {
			return err
		}
		e := newEntity(id)
		applyEntityTags(e, full)
		if name, ok := full.Get("Name"); ok {
			e.Card = name.(string)
		}
		if err := p.World.Add(e); err != nil {
			return err
		}
		p.logger.Info("added new entity", zap.Int64("id", id), zap.String("card", e.Card))
	}

	if showVal, ok := power.Get("ShowEntity"); ok {
		show := showVal.(*schema.MessageValue)
		id, err := tagInt(show, "Entity")
		if err != nil {
			return err
		}
		e := p.World.GetOrCreate(id)
		if name, ok := show.Get("Name"); ok {
			e.Card = name.(string)
		}
		applyEntityTags(e, show)
		p.logger.Info("revealed entity", zap.Int64("id", id), zap.String("card", e.Card))
	}

	// HideEntity carries no state the tracker keeps today.

	if changeVal, ok := power.Get("TagChange"); ok {
		change := changeVal.(*schema.MessageValue)
		id, err := tagInt(change, "Entity")
		if err != nil {
			return err
		}
		tag, err := tagInt(change, "Tag")
		if err != nil {
			return err
		}
		value, err := tagInt(change, "Value")
		if err != nil {
			return err
		}
		e := p.World.GetOrCreate(id)
		e.Tags[tag] = value
		p.logger.Info("tag change", zap.Int64("entity", id), zap.Int64("tag", tag), zap.Int64("value", value))
	}

	if createVal, ok := power.Get("CreateGame"); ok {
		return p.processCreateGameLike(createVal.(*schema.MessageValue))
	}

	return nil
}

// applyEntityTags copies an Entity or PowerHistoryEntity message's
// Tags[] into e — both use the same Tag{Name,Value} shape.
func applyEntityTags(e *Entity, entity *schema.MessageValue) {
	for _, tagVal := range entity.GetRepeated("Tags") {
		tag := tagVal.(*schema.MessageValue)
		name, _ := tag.Get("Name")
		value, _ := tag.Get("Value")
		e.Tags[name.(int64)] = value.(int64)
	}
}

// entityID reads an Entity message's Id field (int32 -> int64).
func entityID(entity *schema.MessageValue) (int64, error) {
	return tagInt(entity, "Id")
}

func tagInt(v *schema.MessageValue, field string) (int64, error) {
	val, ok := v.Get(field)
	if !ok {
		return 0, fmt.Errorf("tracker: missing field %q", field)
	}
	n, ok := val.(int64)
	if !ok {
		return 0, fmt.Errorf("tracker: field %q is not an integer (got %T)", field, val)
	}
	return n, nil
}
