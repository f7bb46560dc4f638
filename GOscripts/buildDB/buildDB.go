package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/MillennialCoin69/Main/internal/platform/config"
	"github.com/MillennialCoin69/Main/internal/platform/database"
	"github.com/MillennialCoin69/Main/internal/window"
	"github.com/PuerkitoBio/goquery"
	"gorm.io/gorm/clause"
)

// 从前端导出的桌面静态页（desktop.html）解析图标目录，写入panels表。
// 页面里每个桌面图标是一个 .desktop-icon 节点：
//
//	<div class="desktop-icon" data-panel-id="game-center" data-kind="game-center"
//	     data-dock="right" style="left: 20px; top: 320px;">
//	  <img src="assets/icons/retro-game.webp" />
//	  <span class="icon-label">Game Center</span>
//	</div>
func main() {
	build()
}

// parsePixels 从 "320px" 这样的样式值中取出数字
func parsePixels(raw string) int {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "px")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// styleValue 从内联style中取出指定属性的值
func styleValue(style, prop string) string {
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.TrimSpace(parts[0]) == prop {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

// 构建面板目录数据库
func build() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	database.InitDB(cfg.Database.Sqlite)

	htmlFile, err := os.Open("./desktop.html")
	if err != nil {
		log.Fatal(err)
	}
	defer htmlFile.Close()

	doc, err := goquery.NewDocumentFromReader(htmlFile)
	if err != nil {
		log.Fatal(err)
	}

	var panels []window.Panel
	doc.Find(".desktop-icon").Each(func(i int, s *goquery.Selection) {
		panelID, ok := s.Attr("data-panel-id")
		if !ok || panelID == "" {
			log.Printf("第 %d 个图标缺少 data-panel-id，跳过\n", i)
			return
		}

		kind := s.AttrOr("data-kind", panelID)
		dock := s.AttrOr("data-dock", "left")
		title := strings.TrimSpace(s.Find(".icon-label").First().Text())
		if title == "" {
			title = panelID
		}
		icon := s.Find("img").First().AttrOr("src", "")

		style := s.AttrOr("style", "")
		posX := parsePixels(styleValue(style, "left"))
		posY := parsePixels(styleValue(style, "top"))

		panels = append(panels, window.Panel{
			PanelID: panelID,
			Kind:    kind,
			Title:   title,
			Icon:    icon,
			Dock:    dock,
			PosX:    posX,
			PosY:    posY,
		})
		fmt.Println("面板ID:", panelID, "标题:", title, "图标:", icon, "停靠:", dock, "位置:", posX, posY)
	})

	if len(panels) == 0 {
		log.Fatal("没有解析到任何桌面图标，检查desktop.html")
	}

	if err := database.DB.AutoMigrate(&window.Panel{}); err != nil {
		log.Fatal(err)
	}

	// 按PanelID做upsert，重复执行脚本不会产生副本
	if err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "panel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "title", "icon", "dock", "pos_x", "pos_y"}),
	}).Create(&panels).Error; err != nil {
		log.Fatal(err)
	}

	fmt.Printf("数据库构建完成！共写入 %d 个面板。\n", len(panels))
}
