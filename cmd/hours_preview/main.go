package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/controller/formatting"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/hours"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// Локальный просмотр того, что увидят гости и сотрудники, без бота и базы
func main() {
	hoursText := flag.String("hours", "Monday: 12-23, Tuesday: 12-23, Wednesday: 12-23, Thursday: 12-23, Friday: 12-01, Saturday: 12-01, Sunday: 12-23", "часы работы в свободной форме")
	planPath := flag.String("plan", "", "JSON плана зала; без него рисуется демо-план")
	occupiedIDs := flag.String("occupied", "t2,t5", "id занятых столов через запятую")
	out := flag.String("out", "floor_plan.png", "куда сохранить картинку")
	flag.Parse()

	fmt.Printf("🕐 EN: %s\n", hours.Group(*hoursText, hours.DayTranslations{}))
	fmt.Printf("🕐 RU: %s\n", hours.Group(*hoursText, formatting.RussianDays))

	plan := demoPlan()
	if *planPath != "" {
		data, err := os.ReadFile(*planPath)
		if err != nil {
			fmt.Printf("Ошибка чтения плана: %v\n", err)
			os.Exit(1)
		}
		plan = &model.FloorPlan{}
		if err := json.Unmarshal(data, plan); err != nil {
			fmt.Printf("Ошибка разбора плана: %v\n", err)
			os.Exit(1)
		}
	}

	occupied := make(map[string]bool)
	for _, id := range strings.Split(*occupiedIDs, ",") {
		if id = strings.TrimSpace(id); id != "" {
			occupied[id] = true
		}
	}

	imageData, err := formatting.GenerateFloorPlanImage(plan, occupied, plan.Name)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ План зала сохранён в %s\n", *out)
	fmt.Printf("🪑 Столов: %d, занято: %d\n", len(plan.Tables), len(occupied))
}

func demoPlan() *model.FloorPlan {
	return &model.FloorPlan{
		Name:    "Основной зал",
		Version: 1,
		Tables: []model.Table{
			{ID: "t1", Name: "1", Capacity: 2, IsActive: true, Shape: model.TableShapeRound, X: 60, Y: 60, Width: 70, Height: 70},
			{ID: "t2", Name: "2", Capacity: 2, IsActive: true, Shape: model.TableShapeRound, X: 200, Y: 60, Width: 70, Height: 70},
			{ID: "t3", Name: "3", Capacity: 4, IsActive: true, Shape: model.TableShapeSquare, X: 60, Y: 200, Width: 90, Height: 90},
			{ID: "t4", Name: "4", Capacity: 4, IsActive: false, Shape: model.TableShapeSquare, X: 200, Y: 200, Width: 90, Height: 90},
			{ID: "t5", Name: "5", Capacity: 8, IsActive: true, Shape: model.TableShapeRectangle, X: 60, Y: 350, Width: 230, Height: 90},
			{ID: "t6", Name: "6", Capacity: 6, IsActive: true, Shape: model.TableShapeRectangle, X: 360, Y: 230, Width: 90, Height: 160, Rotation: 15},
		},
		Elements: []model.FloorPlanElement{
			{ID: "bar", Type: model.ElementBar, Label: "Бар", X: 520, Y: 40, Width: 70, Height: 300},
			{ID: "door", Type: model.ElementEntrance, Label: "Вход", X: 360, Y: 470, Width: 120, Height: 20},
			{ID: "win", Type: model.ElementWindow, X: 20, Y: 20, Width: 300, Height: 10},
		},
	}
}
