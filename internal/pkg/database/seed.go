package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type seedTable struct {
	table   string
	columns []string
	rows    [][]any
}

// Reference data a fresh salon starts with.
var seedData = []seedTable{
	{
		table:   "services",
		columns: []string{"name", "description", "price", "category", "duration", "popular"},
		rows: [][]any{
			{"Комплексный груминг", "Полный комплекс услуг по уходу за шерстью, кожей и когтями вашего питомца", 1500, "grooming", 120, true},
			{"Стрижка и укладка", "Профессиональная стрижка по породе или индивидуальному запросу с последующей укладкой", 1200, "grooming", 90, true},
			{"Гигиенический уход", "Стрижка когтей, чистка ушей и глаз, уход за кожей", 800, "hygiene", 60, false},
			{"Чистка зубов", "Профессиональная чистка зубов и уход за полостью рта", 700, "hygiene", 30, false},
			{"SPA-процедуры", "Массаж, маски, ароматерапия для вашего питомца", 1000, "spa", 90, true},
			{"Обработка от паразитов", "Защита от блох и клещей безопасными средствами", 600, "health", 30, false},
			{"Тримминг", "Выщипывание отмершей шерсти для жесткошерстных пород", 900, "grooming", 75, false},
			{"Экспресс-линька", "Ускоренное выведение шерсти в период линьки", 1100, "grooming", 60, false},
			{"Уход за лапами", "Стрижка когтей, уход за подушечками лап", 500, "hygiene", 30, false},
			{"Уход за глазами", "Очистка, удаление слезных дорожек", 400, "hygiene", 20, false},
			{"Уход за ушами", "Чистка ушных раковин, удаление шерсти", 450, "hygiene", 25, false},
			{"Аромарасчесывание", "Расчесывание с аромамаслами для блеска шерсти", 650, "spa", 45, false},
		},
	},
	{
		table:   "reviews",
		columns: []string{"author_name", "author_avatar", "rating", "review_text", "service_name", "pet_type", "approved"},
		rows: [][]any{
			{"Анна К.", "АК", 5, "Очень довольна услугами салона! Моего пуделя стригут просто идеально. Персонал внимательный и заботливый.", "Стрижка и укладка", "собака", true},
			{"Игорь П.", "ИП", 5, "Привожу своего кота уже больше года. Всегда отличный результат! Спасибо за профессионализм.", "Комплексный груминг", "кот", true},
			{"Марина С.", "МС", 5, "Лучший груминг-салон в городе! Цены адекватные, качество на высоте. Мой шпиц всегда выглядит ухоженным.", "Комплексный груминг", "собака", true},
			{"Дмитрий В.", "ДВ", 4, "Хороший салон, качественные услуги. Единственное, пришлось немного подождать в очереди.", "Гигиенический уход", "собака", true},
			{"Ольга М.", "ОМ", 5, "Впервые привела свою собаку на груминг и осталась очень довольна. Специалисты знают свое дело.", "Комплексный груминг", "собака", true},
		},
	},
	{
		table:   "blog_posts",
		columns: []string{"title", "excerpt", "content", "category", "author", "read_time"},
		rows: [][]any{
			{
				"Как правильно ухаживать за шерстью собаки в домашних условиях",
				"Полное руководство по уходу за шерстью вашего питомца с профессиональными советами от наших грумеров.",
				"Правильный уход за шерстью собаки - это не только вопрос эстетики, но и важная составляющая здоровья вашего питомца...",
				"care", "Мария Иванова", "8 мин",
			},
			{
				"Топ-5 ошибок в питании собак, которые допускают владельцы",
				"Узнайте, какие распространенные ошибки в кормлении могут навредить здоровью вашего питомца.",
				"Правильное питание - основа здоровья и долголетия вашего питомца. К сожалению, многие владельцы допускают серьезные ошибки...",
				"nutrition", "Алексей Петров", "6 мин",
			},
			{
				"Как подготовить питомца к зиме: советы грумеров",
				"Сезонные рекомендации по уходу за шерстью, лапами и кожей вашего питомца в холодное время года.",
				"Зима - особое время года, которое требует дополнительного ухода за вашим питомцем...",
				"care", "Ольга Сидорова", "5 мин",
			},
		},
	},
	{
		table:   "gallery",
		columns: []string{"title", "description", "category"},
		rows: [][]any{
			{"Стрижка пуделя", `Профессиональная стрижка пуделя в стиле "Лев"`, "dogs"},
			{"Груминг шпица", "Комплексный уход за шерстью шпица", "dogs"},
			{"Стрижка кота", "Аккуратная стрижка персидского кота", "cats"},
			{"SPA для собаки", "Расслабляющие SPA-процедуры с аромамаслами", "spa"},
			{"Гигиенический уход", "Комплекс гигиенических процедур", "grooming"},
		},
	},
}

// Seed inserts reference data into every seeded table that is still empty.
// Tables that already hold rows are left alone, so repeated startups never duplicate data.
func Seed(ctx context.Context, db *sqlx.DB) error {
	sb := Builder(db)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	for _, st := range seedData {
		var count int
		if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+st.table); err != nil {
			return fmt.Errorf("seed: count %s: %w", st.table, err)
		}
		if count > 0 {
			continue
		}

		insert := sb.Insert(st.table).Columns(st.columns...)
		for _, row := range st.rows {
			insert = insert.Values(row...)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("seed: build %s: %w", st.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed: insert %s: %w", st.table, err)
		}

		log.Info().Str("table", st.table).Int("rows", len(st.rows)).Msg("Seeded table")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}
