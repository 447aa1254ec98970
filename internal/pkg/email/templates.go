package email

// BaseTemplate is the layout shared by all notifications
const BaseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f6f3ef; color: #333333; }
        .container { max-width: 600px; margin: 0 auto; padding: 32px 16px; }
        .card { background: #ffffff; border-radius: 12px; padding: 28px; border: 1px solid #e8e1d9; }
        h2 { font-size: 22px; margin: 0 0 16px; }
        td { padding: 4px 12px 4px 0; vertical-align: top; }
        .label { color: #8a7f74; }
        .footer { text-align: center; margin-top: 24px; color: #8a7f74; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            {{.Content}}
        </div>
        <div class="footer">Груминг-салон · служебное уведомление</div>
    </div>
</body>
</html>`

// NewBookingTemplate is sent when a customer books a slot
const NewBookingTemplate = `<h2>Новая запись №{{.ID}}</h2>
<table>
    <tr><td class="label">Дата</td><td>{{.Date}} {{.Time}}</td></tr>
    <tr><td class="label">Услуга</td><td>{{.ServiceName}}</td></tr>
    <tr><td class="label">Питомец</td><td>{{.PetName}} ({{.PetBreed}})</td></tr>
    <tr><td class="label">Клиент</td><td>{{.CustomerName}}, {{.CustomerPhone}}</td></tr>
    {{if .Notes}}<tr><td class="label">Примечание</td><td>{{.Notes}}</td></tr>{{end}}
</table>`

// NewContactTemplate is sent when the contact form is submitted
const NewContactTemplate = `<h2>Сообщение №{{.ID}} от {{.Name}}</h2>
<table>
    <tr><td class="label">Email</td><td>{{.Email}}</td></tr>
    {{if .Phone}}<tr><td class="label">Телефон</td><td>{{.Phone}}</td></tr>{{end}}
</table>
<p>{{.Message}}</p>`
