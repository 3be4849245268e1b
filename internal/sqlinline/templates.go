package sqlinline

const QTemplatePanelsListAll = `--sql fd6d46ac-8245-4576-ad96-030c46640c41
select template_key, panel, x, y, width, height
from vehicle_template_panels
order by template_key asc, panel asc;
`

const QTemplatePanelUpsert = `--sql c9131be1-f279-4bbd-82c4-a179ff058919
insert into vehicle_template_panels (template_key, panel, x, y, width, height)
values ($1, $2, $3, $4, $5, $6)
on conflict (template_key, panel) do update set
    x = excluded.x,
    y = excluded.y,
    width = excluded.width,
    height = excluded.height;
`
