package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
// Numbers are passed preformatted as %s: the printer would group their digits.
const (
	msgRoleLandlord     = "Landlord"
	msgRoleFarmer       = "Farmer"
	msgPlayerTitle      = "%s (%s)"
	msgHandCount        = "Cards in hand: %s"
	msgBottomCards      = "Bottom cards: "
	msgLandlordID       = "Landlord ID: "
	msgUndetermined     = "undetermined"
	msgCurrentTurn      = "Current turn: "
	msgMultiplier       = "Multiplier: "
	msgGameOver         = "Game over: "
	msgYes              = "Yes"
	msgNo               = "No"
	msgWinnerSide       = "Winner: "
	msgNoneYet          = "none yet"
	msgHistoryOmitted   = "(%s earlier entries hidden)"
	msgStatusPending    = "Status: waiting"
	msgStatusRefreshed  = "Status: refreshed %s"
	msgStatusFailedCode = "Status: request failed %s"
	msgStatusError      = "Status: error"

	msgDashboardTitle  = "Dou Dizhu admin"
	msgPlayersHeading  = "Players"
	msgGameInfoHeading = "Game"
	msgHistoryHeading  = "History"
)

var chineseMessages = map[string]string{
	msgRoleLandlord:     "地主",
	msgRoleFarmer:       "农民",
	msgPlayerTitle:      "%s（%s）",
	msgHandCount:        "手牌数量：%s",
	msgBottomCards:      "底牌：",
	msgLandlordID:       "地主ID：",
	msgUndetermined:     "未确定",
	msgCurrentTurn:      "当前回合：",
	msgMultiplier:       "倍数：",
	msgGameOver:         "是否结束：",
	msgYes:              "是",
	msgNo:               "否",
	msgWinnerSide:       "胜利方：",
	msgNoneYet:          "未产生",
	msgHistoryOmitted:   "（已省略 %s 条更早的记录）",
	msgStatusPending:    "状态：等待中",
	msgStatusRefreshed:  "状态：已刷新 %s",
	msgStatusFailedCode: "状态：请求失败 %s",
	msgStatusError:      "状态：错误",

	msgDashboardTitle:  "斗地主管理后台",
	msgPlayersHeading:  "玩家",
	msgGameInfoHeading: "对局信息",
	msgHistoryHeading:  "出牌记录",
}

// SupportedLanguages of the dashboard, the first one is the default.
var SupportedLanguages = []language.Tag{language.SimplifiedChinese, language.English}

var (
	languageMatcher = language.NewMatcher(SupportedLanguages)
	messages        = newCatalog()
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(SupportedLanguages[0]))
	for key, text := range chineseMessages {
		if err := b.SetString(language.SimplifiedChinese, key, text); err != nil {
			panic(err)
		}
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
	return b
}

// Localizer translates the dashboard texts to one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a Localizer for the closest supported language to locale.
// Unknown or malformed locales fall back to Simplified Chinese.
func NewLocalizer(locale string) *Localizer {
	tag := SupportedLanguages[0]
	if parsed, err := language.Parse(locale); err == nil {
		_, idx, confidence := languageMatcher.Match(parsed)
		if confidence != language.No {
			tag = SupportedLanguages[idx]
		}
	}
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// Language returns the language texts are translated to.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

func (l *Localizer) sprintf(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Title of the dashboard page.
func (l *Localizer) Title() string { return l.sprintf(msgDashboardTitle) }

// PlayersHeading, GameInfoHeading and HistoryHeading are the section headings.
func (l *Localizer) PlayersHeading() string { return l.sprintf(msgPlayersHeading) }

func (l *Localizer) GameInfoHeading() string { return l.sprintf(msgGameInfoHeading) }

func (l *Localizer) HistoryHeading() string { return l.sprintf(msgHistoryHeading) }
